package undupe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/undupe/pkg/commands/dedupecmd"
	"github.com/arthur-debert/undupe/pkg/display"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/types"
)

func newDedupeCmd() *cobra.Command {
	var quarantineDir string
	var workerCount int

	cmd := &cobra.Command{
		Use:   "dedupe [list|run] [directories...]",
		Short: "Find and move duplicate files based on content",
		Long: `Dedupe scans the given directories, groups files with identical
content and keeps the first-discovered member of each group. In run
mode the remaining members are moved to the quarantine directory
(never deleted); in list mode the groups are only displayed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.dedupe")

			mode, err := types.ParseRunMode(args[0])
			if err != nil {
				return err
			}
			directories := args[1:]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if quarantineDir == "" {
				quarantineDir = cfg.QuarantineDir
			}
			if workerCount == 0 {
				workerCount = cfg.Workers
			}

			logger.Info().
				Str("mode", string(mode)).
				Strs("directories", directories).
				Str("quarantine", quarantineDir).
				Msg("Starting dedupe")

			format := display.FormatAuto.Resolve(os.Stdout)

			var observer types.Observer
			var progress *display.ProgressObserver
			if format == display.FormatTerminal {
				progress = display.NewProgressObserver("Calculating file hashes...")
				observer = progress
			}

			result, err := dedupecmd.Run(dedupecmd.Options{
				Mode:          mode,
				Directories:   directories,
				QuarantineDir: quarantineDir,
				Workers:       workerCount,
				Observer:      observer,
			})
			if progress != nil {
				progress.Stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Groups) == 0 {
				fmt.Fprintln(out, "No duplicate files found!")
				return nil
			}

			renderer := display.NewRenderer(format, display.Limits{
				MaxGroups:     cfg.Display.MaxGroups,
				MaxOperations: cfg.Display.MaxOperations,
			})
			fmt.Fprintln(out, renderer.RenderDuplicateGroups(result.Groups))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderer.RenderDedupeSummary(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&quarantineDir, "duplicates-directory", "",
		"Directory to move duplicate files to (default from config, 'duplicates')")
	cmd.Flags().IntVar(&workerCount, "workers", 0,
		"Hashing worker count (0 = one per CPU)")

	return cmd
}

package undupe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/undupe/pkg/commands/renamecmd"
	"github.com/arthur-debert/undupe/pkg/display"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/types"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [list|run] [directories...]",
		Short: "Rename files with duplicate names across directories",
		Long: `Rename scans the given directories for files that share a name, keeps
the lexicographically first path of each group unchanged and renames
the rest with a numeric suffix ("photo.jpg" becomes "photo-1.jpg").
In list mode the planned renames are only displayed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.rename")

			mode, err := types.ParseRunMode(args[0])
			if err != nil {
				return err
			}
			directories := args[1:]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger.Info().
				Str("mode", string(mode)).
				Strs("directories", directories).
				Msg("Starting rename")

			result, err := renamecmd.Run(renamecmd.Options{
				Mode:        mode,
				Directories: directories,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Operations) == 0 {
				fmt.Fprintln(out, "No duplicate filenames found!")
				return nil
			}

			format := display.FormatAuto.Resolve(os.Stdout)
			renderer := display.NewRenderer(format, display.Limits{
				MaxGroups:     cfg.Display.MaxGroups,
				MaxOperations: cfg.Display.MaxOperations,
			})
			fmt.Fprintln(out, renderer.RenderRenameOperations(result.Operations))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderer.RenderRenameSummary(result))
			return nil
		},
	}
}

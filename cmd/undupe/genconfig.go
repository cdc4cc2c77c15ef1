package undupe

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/undupe/pkg/config"
)

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config",
		Short: "Print the default configuration as TOML",
		Long: `Prints the built-in defaults in TOML form. Redirect the output to
.undupe.toml in a directory to customize undupe's behavior there.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			toml, err := config.DefaultTOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), toml)
			return nil
		},
	}
}

package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avolkov/metagrid/internal/config"
)

// newCmdValidate creates the validate command, the standalone counterpart
// of run --validate-config.
func newCmdValidate(global *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and report every problem found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, global.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(ctx); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "configuration OK")
			return nil
		},
	}
}

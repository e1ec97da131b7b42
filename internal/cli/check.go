package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZombieAlex/MFCLogger/internal/config"
)

// NewCheckCommand creates the check command, which validates a selector
// configuration without running the engine.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a selector config without running",
		Long: `Validate the selector configuration: category names, predicate
specs, and the id/when requirement. Exits non-zero on the first error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			selectors, err := cfg.Compile()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid selector config", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d selector(s) valid\n", len(selectors))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to selector config YAML (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// Package cli wires the engine into a cobra command tree.
package cli

import "github.com/spf13/cobra"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the mfclogger CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mfclogger",
		Short: "Selective event-stream logger for MFC model feeds",
		Long: `mfclogger records selected slices of a model event stream to the
console and to per-destination text files, driven by a selector
configuration. Event streams are consumed from recorded NDJSON logs.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

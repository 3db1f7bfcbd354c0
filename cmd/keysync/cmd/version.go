package cmd

import (
	"fmt"

	"keysync/internal/version"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if full {
				fmt.Fprintln(cmd.OutOrStdout(), info.Full())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "keysync %s\n", info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include commit, build time and platform")

	return cmd
}

package cmd

import (
	"fmt"
	"os"

	"keysync/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and generate the keysync configuration",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			return enc.Close()
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfgFile != "" {
				fmt.Fprintln(out, a.cfgFile)
				return nil
			}
			if p := config.FindConfigFile(); p != "" {
				fmt.Fprintln(out, p)
				return nil
			}
			fmt.Fprintln(out, "No config file found, using defaults")
			return nil
		},
	}

	var (
		format string
		user   bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default keysync config file",
		Long: `Write the default configuration as keysync.<format> into the current
directory, or into ~/.config/keysync with --user. An existing file is never
overwritten.

Examples:
  keysync config init
  keysync config init --format toml
  keysync config init --user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if user {
				dir, err = config.UserConfigDir()
			}
			if err != nil {
				return err
			}

			p, err := config.GenerateConfig(dir, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", p)
			return nil
		},
	}
	initCmd.Flags().StringVar(&format, "format", "yaml", fmt.Sprintf("config file format %v", config.SupportedFormats))
	initCmd.Flags().BoolVar(&user, "user", false, "write into the user config directory")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

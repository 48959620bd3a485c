// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"composer-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `composer config` command tree.
func newConfigCommand(app *App, opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage composer configuration",
		Long: `Manage composer configuration.

Configuration is read from, in order:
  - the file named by --config
  - Linux: ~/.config/composer/config.cue
  - macOS: ~/Library/Application Support/composer/config.cue
  - Windows: %APPDATA%\composer\config.cue
  - ./composer.cue

COMPOSER_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, opts, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue|toml)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Configuration written to %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.cfgFile})
			if err != nil {
				return err
			}
			if loaded.Path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, loaded.Path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, opts *globalOptions, format string) error {
	cfg, err := app.loadConfig(cmd.Context(), cmd, opts)
	if err != nil {
		return err
	}

	switch format {
	case formatCUE:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case formatTOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		_, err = app.stdout.Write(out)
		return err
	default:
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("unknown format %q (want %s or %s)", format, formatCUE, formatTOML)}
	}
	return nil
}

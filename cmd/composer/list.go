// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"composer-cli/pkg/fragment"

	"github.com/spf13/cobra"
)

func newListCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fragments available in the plugins directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}

			names, err := fragment.NewDirSource(cfg.PluginsDir, cfg.Extension).Discover()
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", cfg.PluginsDir, err)
			}

			if len(names) == 0 {
				fmt.Fprintf(app.stdout, "%s\n", SubtitleStyle.Render("(no fragments in "+cfg.PluginsDir+")"))
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(app.stdout, name)
			}
			return nil
		},
	}
}

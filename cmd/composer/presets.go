// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPresetsCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List registered presets and their expansions",
		Long: `List registered presets and the fragments each one expands to.

Presets come from the built-in table, overlaid by the "presets" list of the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			expander, _, err := newExpanderAndParser(cfg)
			if err != nil {
				return err
			}

			presets := expander.Presets()
			if presets.Len() == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no presets registered)"))
				return nil
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Presets"))
			for _, name := range presets.Names() {
				fragments, _ := presets.Lookup(name)
				fmt.Fprintf(app.stdout, "  %s  %s\n", NameStyle.Render(name), strings.Join(fragments, " "))
			}
			return nil
		},
	}
}

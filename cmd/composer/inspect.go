// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"composer-cli/pkg/depcheck"
	"composer-cli/pkg/fragment"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// inspectDocument is the TOML shape printed by `composer inspect`.
type inspectDocument struct {
	Fragment []*fragment.Fragment `toml:"fragment"`
}

func newInspectCommand(app *App, opts *globalOptions) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <token>...",
		Short: "Show parsed metadata for the fragments a request expands to",
		Long: `Expand a request, parse each fragment and print its metadata as TOML.

Dependencies are checked and ordering diagnostics are logged as warnings;
nothing is written.`,
		Example: `  composer inspect DEFAULTS -main
  composer inspect --plugins-dir ./fragments core routing`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			logger := app.logger(cfg)

			expander, parser, err := newExpanderAndParser(cfg)
			if err != nil {
				return err
			}
			names, err := expander.Expand(args)
			if err != nil {
				return app.fail(cfg, false, err)
			}
			fragments, err := parser.ParseAll(names)
			if err != nil {
				return app.fail(cfg, false, err)
			}

			if err := depcheck.Check(fragments); err != nil {
				logger.Warn("dependencies not satisfied", "error", err)
			}
			report := depcheck.Diagnose(fragments)
			for _, inv := range report.Inversions {
				logger.Warn("fragment precedes its providers", "detail", inv.String())
			}
			for _, dup := range report.Duplicates {
				logger.Warn("capability provided more than once", "detail", dup.String())
			}

			out, err := toml.Marshal(inspectDocument{Fragment: fragments})
			if err != nil {
				return fmt.Errorf("failed to encode fragments: %w", err)
			}
			_, err = app.stdout.Write(out)
			return err
		},
	}
	// Negation tokens must not be read as flags.
	inspectCmd.Flags().SetInterspersed(false)
	return inspectCmd
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"composer-cli/internal/app/generate"
	"composer-cli/internal/config"
	"composer-cli/internal/issue"

	"github.com/spf13/cobra"
)

// runGenerate composes tokens into output. Failures are rendered here and
// returned as a Rendered *ExitError; the destination is never touched on
// failure.
func runGenerate(cmd *cobra.Command, app *App, opts *rootOptions, output string, tokens []string) error {
	cfg, err := app.loadConfig(cmd.Context(), cmd, &opts.globalOptions)
	if err != nil {
		return app.fail(config.DefaultConfig(), opts.explain, configLoadError(opts.cfgFile, err))
	}
	if flagChanged(cmd, "strict-order") {
		cfg.Checks.StrictOrder = opts.strictOrder
	}
	if flagChanged(cmd, "unique-provides") {
		cfg.Checks.UniqueProvides = opts.uniqueProvides
	}

	logger := app.logger(cfg)
	service, err := app.newService(cfg, logger)
	if err != nil {
		return app.fail(cfg, opts.explain, err)
	}

	// The artifact owns stdout on a dry run.
	summary := app.stdout
	if opts.dryRun {
		summary = app.stderr
	}

	outcome, err := service.Run(cmd.Context(), generate.Request{
		Output: output,
		Tokens: tokens,
		DryRun: opts.dryRun,
		Stdout: app.stdout,
	})
	if err != nil {
		return app.fail(cfg, opts.explain, err)
	}

	printSummary(summary, output, outcome, opts.dryRun)
	return nil
}

// configLoadError attaches the config guide to a load failure.
func configLoadError(path string, err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	if path == "" {
		path = "configuration"
	}
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithKind(issue.ConfigLoadFailedId).
		WithSuggestion("Run 'composer config show' to see the effective configuration").
		WithSuggestion("Run 'composer config init' to write a fresh default file").
		Wrap(err).
		Build()
}

func printSummary(w io.Writer, output string, outcome *generate.Outcome, dryRun bool) {
	names := make([]string, len(outcome.Plan.Names))
	for i, name := range outcome.Plan.Names {
		names[i] = NameStyle.Render(name)
	}

	target := output
	if dryRun {
		target = "stdout"
	}
	fmt.Fprintf(w, "Generating %s with plugins %s\n", target, strings.Join(names, ", "))
	fmt.Fprintf(w, "%s Success (%d imports hoisted)\n", SuccessStyle.Render("✓"), len(outcome.Result.Imports))
}

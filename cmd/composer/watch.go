// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"composer-cli/internal/config"
	"composer-cli/internal/watch"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	rootOptions
	debounce time.Duration
}

func newWatchCommand(app *App, global *globalOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <output-path> <token>...",
		Short: "Regenerate the output whenever a fragment changes",
		Long: `Compose the request once, then watch the plugins directory and compose
again after every change to a fragment source or descriptor. A failed
composition is reported and watching continues; the previous output stays
in place. Stop with Ctrl+C.`,
		Args: validateRootArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globalOptions = *global
			return runWatch(cmd, app, opts, args[0], args[1:])
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period after a change before composing again")
	cmd.Flags().BoolVar(&opts.strictOrder, "strict-order", false, "fail when a fragment is listed before every provider of one of its dependencies")
	cmd.Flags().BoolVar(&opts.uniqueProvides, "unique-provides", false, "fail when two fragments provide the same capability")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print a guide for the failure kind when composition fails")

	return cmd
}

func runWatch(cmd *cobra.Command, app *App, opts *watchOptions, output string, tokens []string) error {
	cfg, err := app.loadConfig(cmd.Context(), cmd, &opts.globalOptions)
	if err != nil {
		return app.fail(config.DefaultConfig(), opts.explain, configLoadError(opts.cfgFile, err))
	}
	logger := app.logger(cfg)

	// The first run only reports; watching starts either way.
	_ = runGenerate(cmd, app, &opts.rootOptions, output, tokens)

	w, err := watch.New(watch.Config{
		Dir:      cfg.PluginsDir,
		Patterns: watch.FragmentPatterns(cfg.Extension),
		Ignore:   outputIgnore(cfg.PluginsDir, output),
		Debounce: opts.debounce,
		Logger:   logger,
		OnChange: func(_ context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Changed:"), strings.Join(changed, ", "))
			// Failures are rendered by runGenerate.
			_ = runGenerate(cmd, app, &opts.rootOptions, output, tokens)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.PluginsDir, err)
	}

	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Watching"), w.Dir())
	return w.Run(cmd.Context())
}

// outputIgnore keeps an output written inside the plugins directory from
// triggering its own regeneration.
func outputIgnore(pluginsDir, output string) []string {
	dir, err := filepath.Abs(pluginsDir)
	if err != nil {
		return nil
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(dir, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions are the flags of the compose (root) command.
type rootOptions struct {
	globalOptions
	dryRun         bool
	strictOrder    bool
	uniqueProvides bool
	explain        bool
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "composer <output-path> <token>...",
		Short: "Compose plugin fragments into a single source file",
		Long: TitleStyle.Render("composer") + SubtitleStyle.Render(" - compose plugin fragments into one file") + `

composer reads each requested fragment from the plugins directory, checks
that every capability a fragment imports is provided by another fragment in
the request, hoists external imports into one sorted block, and writes the
fragment bodies in the order given.

Tokens are fragment names, upper-case preset names, or a fragment name
prefixed with '-' to remove it from what was added so far. Flags must come
before the output path.

` + SubtitleStyle.Render("Examples:") + `
  composer output.py config core parse_form index routing main
  composer output.py DEFAULTS
  composer output.py DEFAULTS -index
  composer --dry-run out.py DEFAULTS listfilespreview`,
		Args:          validateRootArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts, args[0], args[1:])
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Negation tokens look like short flags; stop flag parsing at the
	// output path.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/composer/config.cue)")
	rootCmd.PersistentFlags().StringVar(&opts.pluginsDir, "plugins-dir", "", "directory holding fragment sources (default \"plugins\")")

	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the artifact to stdout instead of writing it")
	rootCmd.Flags().BoolVar(&opts.strictOrder, "strict-order", false, "fail when a fragment is listed before every provider of one of its dependencies")
	rootCmd.Flags().BoolVar(&opts.uniqueProvides, "unique-provides", false, "fail when two fragments provide the same capability")
	rootCmd.Flags().BoolVar(&opts.explain, "explain", false, "print a guide for the failure kind when composition fails")

	rootCmd.AddCommand(newPresetsCommand(app, &opts.globalOptions))
	rootCmd.AddCommand(newListCommand(app, &opts.globalOptions))
	rootCmd.AddCommand(newInspectCommand(app, &opts.globalOptions))
	rootCmd.AddCommand(newConfigCommand(app, &opts.globalOptions))
	rootCmd.AddCommand(newWatchCommand(app, &opts.globalOptions))

	return rootCmd
}

// validateRootArgs requires an output path and at least one token.
func validateRootArgs(cmd *cobra.Command, args []string) error {
	if len(args) >= 2 {
		return nil
	}
	_ = cmd.Usage()
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf("expected <output-path> and at least one fragment or preset, got %d argument(s)", len(args))}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's status. It is called by
// main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// handleError prints errors that the command did not render itself.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Rendered {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

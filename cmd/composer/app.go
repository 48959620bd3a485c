// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"composer-cli/internal/app/generate"
	"composer-cli/internal/config"
	"composer-cli/pkg/compose"
	"composer-cli/pkg/fragment"
	"composer-cli/pkg/request"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App is the composition root of the CLI. Command handlers receive it and
	// reach configuration and output streams only through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies are the injection points for NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// globalOptions hold the persistent flags.
	globalOptions struct {
		verbose    bool
		cfgFile    string
		pluginsDir string
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{Config: deps.Config, stdout: deps.Stdout, stderr: deps.Stderr}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration and applies the persistent flag overrides.
func (a *App) loadConfig(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.cfgFile})
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "plugins-dir") {
		cfg.PluginsDir = opts.pluginsDir
	}
	if flagChanged(cmd, "verbose") {
		cfg.UI.Verbose = opts.verbose
	}
	return cfg, nil
}

// logger returns a logger on stderr, at debug level when verbose.
func (a *App) logger(cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// newService wires a generate.Service from cfg.
func (a *App) newService(cfg *config.Config, logger *log.Logger) (*generate.Service, error) {
	expander, parser, err := newExpanderAndParser(cfg)
	if err != nil {
		return nil, err
	}
	composer := compose.New(compose.WithInterpreter(cfg.Output.Interpreter))

	return generate.NewService(expander, parser, composer,
		generate.WithGenerator(cfg.Output.Generator),
		generate.WithPolicy(cfg.Policy()),
		generate.WithLogger(logger),
	), nil
}

func newExpanderAndParser(cfg *config.Config) (*request.Expander, *fragment.Parser, error) {
	presets, err := request.NewPresets(cfg.PresetTable())
	if err != nil {
		return nil, nil, err
	}
	parser, err := fragment.NewParser(fragment.NewDirSource(cfg.PluginsDir, cfg.Extension), cfg.FragmentSyntax())
	if err != nil {
		return nil, nil, err
	}
	return request.NewExpander(presets), parser, nil
}

// flagChanged reports whether name was set on the command line, looking at
// both local and inherited flags.
func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

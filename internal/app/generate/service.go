// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"context"
	"fmt"
	"io"

	"composer-cli/pkg/compose"
	"composer-cli/pkg/depcheck"
	"composer-cli/pkg/fragment"
	"composer-cli/pkg/request"

	"github.com/charmbracelet/log"
)

type (
	// Service wires the expander, parser and composer together.
	Service struct {
		expander  *request.Expander
		parser    *fragment.Parser
		composer  *compose.Composer
		generator string
		policy    depcheck.Policy
		logger    *log.Logger
	}

	// Option configures a Service.
	Option func(*Service)

	// Request is one composition run.
	Request struct {
		// Output is the artifact path. Ignored when DryRun is set.
		Output string
		// Tokens are fragment names, preset names and negations.
		Tokens []string
		// DryRun writes the artifact to Stdout instead of Output.
		DryRun bool
		// Stdout receives the artifact on a dry run.
		Stdout io.Writer
	}

	// Plan is a request expanded, parsed and checked, ready to compose.
	Plan struct {
		Names     []string
		Fragments []*fragment.Fragment
		Report    depcheck.Report
	}

	// Outcome describes a successful run.
	Outcome struct {
		Plan    *Plan
		Result  *compose.Result
		Written string
	}
)

// WithGenerator sets the identity written into the header.
func WithGenerator(generator string) Option {
	return func(s *Service) { s.generator = generator }
}

// WithPolicy selects which diagnostics are fatal.
func WithPolicy(p depcheck.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService returns a Service. Without WithLogger it logs nowhere.
func NewService(expander *request.Expander, parser *fragment.Parser, composer *compose.Composer, opts ...Option) *Service {
	s := &Service{
		expander:  expander,
		parser:    parser,
		composer:  composer,
		generator: compose.DefaultGenerator,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare expands tokens, parses every fragment and validates the set. It
// returns the first failure: *request.UnknownPresetError,
// *request.RemovalError, *request.DuplicateNameError,
// *fragment.NotFoundError, *depcheck.UnmetDependencyError, or a policy
// error from depcheck.Report.Enforce.
func (s *Service) Prepare(tokens []string) (*Plan, error) {
	names, err := s.expander.Expand(tokens)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("expanded request", "tokens", tokens, "fragments", names)

	fragments, err := s.parser.ParseAll(names)
	if err != nil {
		return nil, err
	}
	for _, f := range fragments {
		s.logger.Debug("parsed fragment",
			"name", f.Name,
			"provides", f.Provides,
			"depends", f.Depends,
			"imports", len(f.Imports),
			"lines", len(f.Body),
		)
	}

	if err := depcheck.Check(fragments); err != nil {
		return nil, err
	}

	report := depcheck.Diagnose(fragments)
	if err := report.Enforce(s.policy); err != nil {
		return nil, err
	}
	s.warn(report)

	return &Plan{Names: names, Fragments: fragments, Report: report}, nil
}

// Run prepares, composes and writes the artifact. On any error the
// destination is left untouched.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	plan, err := s.Prepare(req.Tokens)
	if err != nil {
		return nil, err
	}

	result := s.composer.Compose(s.generator, plan.Fragments)
	outcome := &Outcome{Plan: plan, Result: result}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("composition canceled: %w", err)
	}

	if req.DryRun {
		if req.Stdout == nil {
			return outcome, nil
		}
		if _, err := req.Stdout.Write(result.Text); err != nil {
			return nil, &WriteError{Path: "<stdout>", Err: err}
		}
		return outcome, nil
	}

	if err := compose.WriteFile(req.Output, result.Text); err != nil {
		return nil, &WriteError{Path: req.Output, Err: err}
	}
	outcome.Written = req.Output
	s.logger.Debug("wrote artifact", "path", req.Output, "bytes", len(result.Text))

	return outcome, nil
}

func (s *Service) warn(r depcheck.Report) {
	for _, inv := range r.Inversions {
		s.logger.Warn("fragment listed before its provider", "fragment", inv.Fragment, "needs", inv.Label, "providers", inv.Providers)
	}
	for _, d := range r.Duplicates {
		s.logger.Warn("capability provided more than once", "capability", d.Label, "fragments", d.Fragments)
	}
	if r.Cycle != nil {
		s.logger.Warn("fragments depend on each other", "cycle", r.Cycle.Cycle)
	}
	if len(r.Inversions) > 0 && r.Suggested != nil {
		s.logger.Info("an order satisfying every dependency", "order", r.Suggested)
	}
}

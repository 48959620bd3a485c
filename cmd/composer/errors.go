// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"composer-cli/internal/app/generate"
	"composer-cli/internal/config"
	"composer-cli/internal/issue"
	"composer-cli/pkg/depcheck"
	"composer-cli/pkg/fragment"
	"composer-cli/pkg/request"

	"github.com/charmbracelet/log"
)

// classifyError attaches operation, resource, suggestions and a guide to a
// composition failure.
func classifyError(err error) *issue.ActionableError {
	var (
		ae          *issue.ActionableError
		unknown     *request.UnknownPresetError
		removal     *request.RemovalError
		duplicate   *request.DuplicateNameError
		notFound    *fragment.NotFoundError
		unmet       *depcheck.UnmetDependencyError
		order       *depcheck.OrderError
		dupProvider *depcheck.DuplicateProviderError
		writeErr    *generate.WriteError
	)

	ctx := issue.NewErrorContext().Wrap(err)

	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &unknown):
		ctx.WithOperation("expand request").
			WithResource(unknown.Token).
			WithKind(issue.UnknownPresetId)
		if len(unknown.Known) > 0 {
			ctx.WithSuggestion("Registered presets: " + strings.Join(unknown.Known, ", "))
		}
		if request.IsNegationToken(unknown.Token) {
			ctx.WithSuggestion("Presets cannot be negated; remove their fragments one by one instead")
		}
		ctx.WithSuggestion("Write fragment names in lower case")
	case errors.As(err, &removal):
		ctx.WithOperation("expand request").
			WithResource(negationToken(removal.Name)).
			WithKind(issue.RemovalFailedId).
			WithSuggestion("Place the negation after the token that adds " + removal.Name)
		if len(removal.Current) > 0 {
			ctx.WithSuggestion("Fragments at that point: " + strings.Join(removal.Current, ", "))
		}
	case errors.As(err, &duplicate):
		ctx.WithOperation("expand request").
			WithResource(duplicate.Name).
			WithKind(issue.DuplicateFragmentId).
			WithSuggestion("Name each fragment once; presets already include their fragments")
	case errors.As(err, &notFound):
		ctx.WithOperation("parse fragment").
			WithResource(notFound.Name).
			WithKind(issue.FragmentNotFoundId).
			WithSuggestion("Run 'composer list' to see available fragments").
			WithSuggestion("Use --plugins-dir to read fragments from another directory")
	case errors.As(err, &unmet):
		ctx.WithOperation("check dependencies").
			WithResource(unmet.Fragment).
			WithKind(issue.UnmetDependenciesId).
			WithSuggestion(fmt.Sprintf("Add fragments providing %s to the request", strings.Join(unmet.Missing, ", "))).
			WithSuggestion("Run 'composer inspect <tokens>' to see what each fragment provides")
	case errors.As(err, &order):
		ctx.WithOperation("check fragment order").
			WithKind(issue.OrderViolationId)
		if len(order.Suggested) > 0 {
			ctx.WithSuggestion("An order satisfying every dependency: " + strings.Join(order.Suggested, " "))
		}
		ctx.WithSuggestion("Run without --strict-order to accept the order as given")
	case errors.As(err, &dupProvider):
		ctx.WithOperation("check providers").
			WithKind(issue.DuplicateProviderId).
			WithSuggestion("Remove one of the fragments with a negation token").
			WithSuggestion("Run without --unique-provides to allow several providers")
	case errors.As(err, &writeErr):
		ctx.WithOperation("write output").
			WithResource(writeErr.Path).
			WithKind(issue.OutputWriteFailedId).
			WithSuggestion("Check that the destination directory exists and is writable")
	default:
		ctx.WithOperation("compose fragments").
			WithKind(issue.FragmentParseErrorId)
	}

	return ctx.Build()
}

// negationToken renders the token that removes name.
func negationToken(name string) string {
	return request.NegationPrefix + name
}

// fail renders err to stderr and returns it as a Rendered *ExitError.
func (a *App) fail(cfg *config.Config, explain bool, err error) error {
	ae := classifyError(err)
	fmt.Fprintf(a.stderr, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(cfg.UI.Verbose))

	if explain && ae.Kind != 0 {
		if guide := issue.Get(ae.Kind); guide != nil {
			rendered, renderErr := guide.Render(string(cfg.UI.ColorScheme))
			if renderErr != nil {
				log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName}).
					Warn("failed to render guide", "issue", ae.Kind, "error", renderErr)
			} else {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}

	return &ExitError{Code: ExitFailure, Err: ae, Rendered: true}
}

// SPDX-License-Identifier: MPL-2.0

package depcheck

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"composer-cli/internal/dag"
	"composer-cli/pkg/fragment"
)

var (
	// ErrOrder is the sentinel wrapped by OrderError.
	ErrOrder = errors.New("fragment order")
	// ErrDuplicateProvider is the sentinel wrapped by DuplicateProviderError.
	ErrDuplicateProvider = errors.New("duplicate provider")
)

type (
	// Inversion is a dependency whose every provider appears after the
	// fragment that needs it.
	Inversion struct {
		Fragment  string
		Label     string
		Providers []string
	}

	// DuplicateProvider is a label claimed by more than one fragment.
	DuplicateProvider struct {
		Label     string
		Fragments []string
	}

	// Report collects the ordering and multiplicity findings for a request
	// that already passed Check. None of them are errors on their own.
	Report struct {
		Inversions []Inversion
		Duplicates []DuplicateProvider
		// Cycle is set when the provider graph has no valid order.
		Cycle *dag.CycleError
		// Suggested is an order satisfying every provider edge, or nil when
		// Cycle is set.
		Suggested []string
	}

	// Policy selects which findings Enforce turns into errors.
	Policy struct {
		StrictOrder    bool
		UniqueProvides bool
	}

	// OrderError is returned under Policy.StrictOrder for inversions. It
	// wraps ErrOrder.
	OrderError struct {
		Inversions []Inversion
		Suggested  []string
		Cycle      *dag.CycleError
	}

	// DuplicateProviderError is returned under Policy.UniqueProvides. It
	// wraps ErrDuplicateProvider.
	DuplicateProviderError struct {
		Duplicates []DuplicateProvider
	}
)

// String renders "core needs config (provided later by config)".
func (i Inversion) String() string {
	return fmt.Sprintf("%s needs %s (provided later by %s)", i.Fragment, i.Label, strings.Join(i.Providers, ", "))
}

// String renders "auth: basic_auth, token_auth".
func (d DuplicateProvider) String() string {
	return fmt.Sprintf("%s: %s", d.Label, strings.Join(d.Fragments, ", "))
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	parts := make([]string, len(e.Inversions))
	for i, inv := range e.Inversions {
		parts[i] = inv.String()
	}
	return "fragments out of dependency order: " + strings.Join(parts, "; ")
}

// Unwrap returns ErrOrder for errors.Is() compatibility.
func (e *OrderError) Unwrap() error { return ErrOrder }

// Error implements the error interface.
func (e *DuplicateProviderError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = d.String()
	}
	return "capabilities provided more than once: " + strings.Join(parts, "; ")
}

// Unwrap returns ErrDuplicateProvider for errors.Is() compatibility.
func (e *DuplicateProviderError) Unwrap() error { return ErrDuplicateProvider }

// Diagnose inspects provider positions and multiplicity. It never changes
// the request; Suggested is advisory.
func Diagnose(fragments []*fragment.Fragment) Report {
	var report Report

	position := make(map[string]int, len(fragments))
	graph := dag.New()
	for i, f := range fragments {
		position[f.Name] = i
		graph.AddNode(f.Name)
	}

	providers := Providers(fragments)

	for i, f := range fragments {
		for _, label := range f.Depends {
			if f.Provides == label {
				continue
			}
			names := providers[label]
			earlier := false
			for _, p := range names {
				graph.AddEdge(p, f.Name)
				if position[p] < i {
					earlier = true
				}
			}
			if len(names) > 0 && !earlier {
				report.Inversions = append(report.Inversions, Inversion{
					Fragment:  f.Name,
					Label:     label,
					Providers: slices.Clone(names),
				})
			}
		}
	}

	for label, names := range providers {
		if len(names) > 1 {
			report.Duplicates = append(report.Duplicates, DuplicateProvider{Label: label, Fragments: names})
		}
	}
	sort.Slice(report.Duplicates, func(a, b int) bool {
		return report.Duplicates[a].Label < report.Duplicates[b].Label
	})

	order, err := graph.TopologicalSort()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			report.Cycle = cycle
		}
	} else {
		report.Suggested = order
	}

	return report
}

// Clean reports whether there is nothing to warn about.
func (r Report) Clean() bool {
	return len(r.Inversions) == 0 && len(r.Duplicates) == 0 && r.Cycle == nil
}

// Enforce returns the first finding the policy makes fatal: inversions under
// StrictOrder, then duplicates under UniqueProvides. A cycle alone is never
// fatal: duplicated providers can close one in a correctly ordered request.
func (r Report) Enforce(p Policy) error {
	if p.StrictOrder && len(r.Inversions) > 0 {
		return &OrderError{Inversions: r.Inversions, Suggested: r.Suggested, Cycle: r.Cycle}
	}
	if p.UniqueProvides && len(r.Duplicates) > 0 {
		return &DuplicateProviderError{Duplicates: r.Duplicates}
	}
	return nil
}

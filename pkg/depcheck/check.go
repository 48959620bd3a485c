// SPDX-License-Identifier: MPL-2.0

// Package depcheck verifies that every dependency declared by a set of
// fragments is provided by some member of the same set.
package depcheck

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"composer-cli/pkg/fragment"
)

// ErrUnmetDependency is the sentinel wrapped by UnmetDependencyError.
var ErrUnmetDependency = errors.New("unmet dependencies")

// UnmetDependencyError names the first fragment, in request order, whose
// dependencies are not all provided, and every label it is missing.
type UnmetDependencyError struct {
	Fragment string
	// Missing is sorted lexically.
	Missing []string
}

// Error implements the error interface.
func (e *UnmetDependencyError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Fragment, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrUnmetDependency for errors.Is() compatibility.
func (e *UnmetDependencyError) Unwrap() error { return ErrUnmetDependency }

// Check returns nil when each fragment's Depends is a subset of the union of
// all Provides labels. Neither position nor the number of providers matters.
func Check(fragments []*fragment.Fragment) error {
	provided := ProvidedLabels(fragments)

	for _, f := range fragments {
		var missing []string
		for _, dep := range f.Depends {
			if !provided[dep] && !slices.Contains(missing, dep) {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return &UnmetDependencyError{Fragment: f.Name, Missing: missing}
		}
	}
	return nil
}

// ProvidedLabels returns the set of Provides labels across fragments. An
// empty label provides nothing.
func ProvidedLabels(fragments []*fragment.Fragment) map[string]bool {
	provided := make(map[string]bool, len(fragments))
	for _, f := range fragments {
		if f.Provides == "" {
			continue
		}
		provided[f.Provides] = true
	}
	return provided
}

// Providers maps each label to the names of the fragments providing it, in
// request order.
func Providers(fragments []*fragment.Fragment) map[string][]string {
	providers := make(map[string][]string, len(fragments))
	for _, f := range fragments {
		if f.Provides == "" {
			continue
		}
		providers[f.Provides] = append(providers[f.Provides], f.Name)
	}
	return providers
}

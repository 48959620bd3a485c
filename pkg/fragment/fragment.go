// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is the sentinel wrapped by NotFoundError.
var ErrNotFound = errors.New("fragment not found")

type (
	// Fragment is one parsed unit of composable source. It is built once by a
	// Parser and not modified afterwards.
	Fragment struct {
		// Name is the request-scoped identifier used to locate the source.
		Name string `toml:"name"`
		// Provides is the capability label this fragment satisfies. It defaults
		// to Name unless the source overrides it; an empty override leaves it
		// empty and the fragment provides nothing.
		Provides string `toml:"provides"`
		// Depends lists required capability labels, first occurrence order,
		// without duplicates.
		Depends []string `toml:"depends"`
		// Imports holds external import directives verbatim, in source order.
		Imports []string `toml:"imports"`
		// Body holds the remaining source lines in source order.
		Body []string `toml:"-"`
		// Origin is the path the fragment was read from.
		Origin string `toml:"origin"`
	}

	// NotFoundError is returned when no source exists for a fragment name.
	// It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Name string
		// Tried lists the locations that were probed, in probe order.
		Tried []string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("fragment %q not found", e.Name)
	}
	return fmt.Sprintf("fragment %q not found (tried %s)", e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// HasBody reports whether the fragment contributes any body lines.
func (f *Fragment) HasBody() bool {
	return len(f.Body) > 0
}

// DependsOn reports whether label is among the fragment's dependencies.
func (f *Fragment) DependsOn(label string) bool {
	return slices.Contains(f.Depends, label)
}

// addDepend appends label unless it is already present.
func (f *Fragment) addDepend(label string) {
	if label == "" || f.DependsOn(label) {
		return
	}
	f.Depends = append(f.Depends, label)
}

// Names returns the Name of each fragment, in order.
func Names(fragments []*Fragment) []string {
	names := make([]string, len(fragments))
	for i, f := range fragments {
		names[i] = f.Name
	}
	return names
}

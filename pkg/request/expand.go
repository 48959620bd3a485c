// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// NegationPrefix marks a token that removes a previously added name.
const NegationPrefix = "-"

var (
	// ErrUnknownPreset is the sentinel wrapped by UnknownPresetError.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrRemoval is the sentinel wrapped by RemovalError.
	ErrRemoval = errors.New("cannot remove fragment")
	// ErrDuplicateName is the sentinel wrapped by DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate fragment")
)

type (
	// Expander turns command-line tokens into an ordered fragment name list.
	Expander struct {
		presets *Presets
	}

	// UnknownPresetError is returned for an upper-case token that is not a
	// registered preset. It wraps ErrUnknownPreset.
	UnknownPresetError struct {
		Token string
		Known []string
	}

	// RemovalError is returned when a negation token names something not
	// currently in the list. It wraps ErrRemoval.
	RemovalError struct {
		Name    string
		Current []string
	}

	// DuplicateNameError is returned when a name would be added twice. It
	// wraps ErrDuplicateName.
	DuplicateNameError struct {
		Name  string
		Token string
	}
)

// Error implements the error interface.
func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %s", e.Token)
}

// Unwrap returns ErrUnknownPreset for errors.Is() compatibility.
func (e *UnknownPresetError) Unwrap() error { return ErrUnknownPreset }

// Error implements the error interface.
func (e *RemovalError) Error() string {
	return fmt.Sprintf("cannot remove %q: not in the fragment list", e.Name)
}

// Unwrap returns ErrRemoval for errors.Is() compatibility.
func (e *RemovalError) Unwrap() error { return ErrRemoval }

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	if e.Token != "" && e.Token != e.Name {
		return fmt.Sprintf("fragment %q added twice (via %s)", e.Name, e.Token)
	}
	return fmt.Sprintf("fragment %q added twice", e.Name)
}

// Unwrap returns ErrDuplicateName for errors.Is() compatibility.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// NewExpander returns an Expander over presets. A nil table means no presets.
func NewExpander(presets *Presets) *Expander {
	if presets == nil {
		presets = &Presets{table: map[string][]string{}}
	}
	return &Expander{presets: presets}
}

// Presets returns the table the expander resolves against.
func (e *Expander) Presets() *Presets {
	return e.presets
}

// Expand processes tokens left to right and returns the resulting names in
// insertion order. The result never contains duplicates. The preset
// convention is tested first, so "-DEFAULTS" is an unknown preset rather
// than a removal.
func (e *Expander) Expand(tokens []string) ([]string, error) {
	names := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		switch {
		case IsPresetToken(tok):
			entries, ok := e.presets.Lookup(tok)
			if !ok {
				return nil, &UnknownPresetError{Token: tok, Known: e.presets.Names()}
			}
			for _, name := range entries {
				if slices.Contains(names, name) {
					return nil, &DuplicateNameError{Name: name, Token: tok}
				}
				names = append(names, name)
			}

		case IsNegationToken(tok):
			target := strings.TrimPrefix(tok, NegationPrefix)
			idx := slices.Index(names, target)
			if idx < 0 {
				return nil, &RemovalError{Name: target, Current: slices.Clone(names)}
			}
			names = slices.Delete(names, idx, idx+1)

		default:
			if slices.Contains(names, tok) {
				return nil, &DuplicateNameError{Name: tok, Token: tok}
			}
			names = append(names, tok)
		}
	}

	return names, nil
}

// IsNegationToken reports whether tok removes a name.
func IsNegationToken(tok string) bool {
	return strings.HasPrefix(tok, NegationPrefix)
}

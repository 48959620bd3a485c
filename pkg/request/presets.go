// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"unicode"

	"github.com/maruel/natural"
)

// DefaultsPreset is the name of the stock preset.
const DefaultsPreset = "DEFAULTS"

// ErrInvalidPreset is the sentinel wrapped by InvalidPresetError.
var ErrInvalidPreset = errors.New("invalid preset")

type (
	// Presets is an immutable table of named token lists.
	Presets struct {
		table map[string][]string
	}

	// InvalidPresetError is returned by NewPresets for a malformed definition.
	// It wraps ErrInvalidPreset for errors.Is() compatibility.
	InvalidPresetError struct {
		Name   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidPresetError) Error() string {
	return fmt.Sprintf("invalid preset %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidPreset for errors.Is() compatibility.
func (e *InvalidPresetError) Unwrap() error { return ErrInvalidPreset }

// DefaultPresetTable returns the stock preset definitions.
func DefaultPresetTable() map[string][]string {
	return map[string][]string{
		DefaultsPreset: {"config", "core", "parse_form", "index", "routing", "main"},
	}
}

// DefaultPresets returns the stock presets.
func DefaultPresets() *Presets {
	p, err := NewPresets(DefaultPresetTable())
	if err != nil {
		panic(err) // stock table is static
	}
	return p
}

// NewPresets validates defs and copies it into an immutable table. Preset
// names must be upper-case, and entries must be plain fragment names: no
// nested presets, no negations, no repeats.
func NewPresets(defs map[string][]string) (*Presets, error) {
	table := make(map[string][]string, len(defs))
	for name, entries := range defs {
		if !IsPresetToken(name) {
			return nil, &InvalidPresetError{Name: name, Reason: "name must be upper-case"}
		}
		if len(entries) == 0 {
			return nil, &InvalidPresetError{Name: name, Reason: "preset is empty"}
		}
		for i, entry := range entries {
			switch {
			case entry == "":
				return nil, &InvalidPresetError{Name: name, Reason: fmt.Sprintf("entry %d is empty", i)}
			case IsNegationToken(entry):
				return nil, &InvalidPresetError{Name: name, Reason: fmt.Sprintf("entry %q is a negation", entry)}
			case IsPresetToken(entry):
				return nil, &InvalidPresetError{Name: name, Reason: fmt.Sprintf("entry %q looks like a preset", entry)}
			case slices.Index(entries, entry) != i:
				return nil, &InvalidPresetError{Name: name, Reason: fmt.Sprintf("entry %q is repeated", entry)}
			}
		}
		table[name] = slices.Clone(entries)
	}
	return &Presets{table: table}, nil
}

// Lookup returns a copy of the names behind preset name.
func (p *Presets) Lookup(name string) ([]string, bool) {
	entries, ok := p.table[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(entries), true
}

// Names returns the preset names in natural order.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.table))
	for name := range p.table {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Len returns the number of presets.
func (p *Presets) Len() int {
	return len(p.table)
}

// IsPresetToken reports whether tok follows the preset naming convention: it
// contains at least one letter and no lower-case letters.
func IsPresetToken(tok string) bool {
	cased := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

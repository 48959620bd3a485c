// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsPresetToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  string
		want bool
	}{
		{"DEFAULTS", true},
		{"WEB2", true},
		{"A_B", true},
		{"X", true},
		{"Defaults", false},
		{"defaults", false},
		{"core", false},
		{"_1", false},
		{"123", false},
		{"", false},
		{"ÉTÉ", true},
		{"été", false},
	}

	for _, tt := range tests {
		if got := IsPresetToken(tt.tok); got != tt.want {
			t.Errorf("IsPresetToken(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestNewPresets_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		defs map[string][]string
	}{
		{"lower-case name", map[string][]string{"web": {"core"}}},
		{"empty preset", map[string][]string{"WEB": {}}},
		{"empty entry", map[string][]string{"WEB": {"core", ""}}},
		{"negation entry", map[string][]string{"WEB": {"core", "-index"}}},
		{"nested preset", map[string][]string{"WEB": {"DEFAULTS"}}},
		{"repeated entry", map[string][]string{"WEB": {"core", "routing", "core"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewPresets(tt.defs)
			if !errors.Is(err, ErrInvalidPreset) {
				t.Fatalf("NewPresets() error = %v, want ErrInvalidPreset", err)
			}
			var ipe *InvalidPresetError
			if !errors.As(err, &ipe) || ipe.Reason == "" {
				t.Errorf("expected *InvalidPresetError with a reason, got %v", err)
			}
		})
	}
}

func TestPresets_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	defs := map[string][]string{"WEB": {"core", "routing"}}
	p, err := NewPresets(defs)
	if err != nil {
		t.Fatalf("NewPresets() error = %v", err)
	}
	defs["WEB"][0] = "changed"

	got, ok := p.Lookup("WEB")
	if !ok {
		t.Fatal("Lookup(WEB) not found")
	}
	if diff := cmp.Diff([]string{"core", "routing"}, got); diff != "" {
		t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
	}

	got[1] = "changed"
	again, _ := p.Lookup("WEB")
	if again[1] != "routing" {
		t.Errorf("Lookup result aliases the table: %v", again)
	}

	if _, ok := p.Lookup("NOPE"); ok {
		t.Error("Lookup(NOPE) should not be found")
	}
}

func TestPresets_NamesNaturalOrder(t *testing.T) {
	t.Parallel()

	p, err := NewPresets(map[string][]string{
		"WEB10":    {"a"},
		"WEB2":     {"b"},
		"DEFAULTS": {"c"},
	})
	if err != nil {
		t.Fatalf("NewPresets() error = %v", err)
	}

	if diff := cmp.Diff([]string{"DEFAULTS", "WEB2", "WEB10"}, p.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestDefaultPresets(t *testing.T) {
	t.Parallel()

	got, ok := DefaultPresets().Lookup(DefaultsPreset)
	if !ok {
		t.Fatal("DEFAULTS not registered")
	}
	want := []string{"config", "core", "parse_form", "index", "routing", "main"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DEFAULTS mismatch (-want +got):\n%s", diff)
	}
}

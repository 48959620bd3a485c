// SPDX-License-Identifier: MPL-2.0

package depcheck

import (
	"errors"
	"strings"
	"testing"

	"composer-cli/pkg/fragment"

	"github.com/google/go-cmp/cmp"
)

func TestDiagnose_CleanRequest(t *testing.T) {
	t.Parallel()

	fragments := []*fragment.Fragment{
		frag("config", ""),
		frag("core", "", "config"),
		frag("main", "", "core", "config"),
	}

	r := Diagnose(fragments)
	if !r.Clean() {
		t.Errorf("expected clean report, got %+v", r)
	}
	if diff := cmp.Diff([]string{"config", "core", "main"}, r.Suggested); diff != "" {
		t.Errorf("Suggested mismatch (-want +got):\n%s", diff)
	}
	if err := r.Enforce(Policy{StrictOrder: true, UniqueProvides: true}); err != nil {
		t.Errorf("Enforce() error = %v", err)
	}
}

func TestDiagnose_Inversion(t *testing.T) {
	t.Parallel()

	// A needs B but B is listed after it; the check still passes.
	fragments := []*fragment.Fragment{frag("A", "", "B"), frag("B", "")}

	if err := Check(fragments); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	r := Diagnose(fragments)
	want := []Inversion{{Fragment: "A", Label: "B", Providers: []string{"B"}}}
	if diff := cmp.Diff(want, r.Inversions); diff != "" {
		t.Errorf("Inversions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B", "A"}, r.Suggested); diff != "" {
		t.Errorf("Suggested mismatch (-want +got):\n%s", diff)
	}
	if r.Cycle != nil {
		t.Errorf("unexpected cycle %v", r.Cycle)
	}

	if err := r.Enforce(Policy{}); err != nil {
		t.Errorf("Enforce(default) error = %v, want nil", err)
	}

	err := r.Enforce(Policy{StrictOrder: true})
	if !errors.Is(err, ErrOrder) {
		t.Fatalf("Enforce(strict) error = %v, want ErrOrder", err)
	}
	var oe *OrderError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OrderError, got %T", err)
	}
	if diff := cmp.Diff([]string{"B", "A"}, oe.Suggested); diff != "" {
		t.Errorf("OrderError.Suggested mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "A needs B (provided later by B)") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestDiagnose_EarlierProviderIsEnough(t *testing.T) {
	t.Parallel()

	fragments := []*fragment.Fragment{
		frag("basic", "auth"),
		frag("views", "", "auth"),
		frag("token", "auth"),
	}

	r := Diagnose(fragments)
	if len(r.Inversions) != 0 {
		t.Errorf("unexpected inversions %v", r.Inversions)
	}
	want := []DuplicateProvider{{Label: "auth", Fragments: []string{"basic", "token"}}}
	if diff := cmp.Diff(want, r.Duplicates); diff != "" {
		t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnose_DuplicateProviders(t *testing.T) {
	t.Parallel()

	fragments := []*fragment.Fragment{
		frag("x2", "x"),
		frag("a2", "a"),
		frag("x1", "x"),
		frag("a1", "a"),
	}

	r := Diagnose(fragments)
	want := []DuplicateProvider{
		{Label: "a", Fragments: []string{"a2", "a1"}},
		{Label: "x", Fragments: []string{"x2", "x1"}},
	}
	if diff := cmp.Diff(want, r.Duplicates); diff != "" {
		t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
	}

	if err := r.Enforce(Policy{StrictOrder: true}); err != nil {
		t.Errorf("Enforce(strict order) error = %v, want nil", err)
	}

	err := r.Enforce(Policy{UniqueProvides: true})
	if !errors.Is(err, ErrDuplicateProvider) {
		t.Fatalf("Enforce(unique) error = %v, want ErrDuplicateProvider", err)
	}
	if got, want := err.Error(), "capabilities provided more than once: a: a2, a1; x: x2, x1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDiagnose_CycleIsReportedNotFatal(t *testing.T) {
	t.Parallel()

	fragments := []*fragment.Fragment{
		frag("A", "", "B"),
		frag("B", "", "A"),
	}

	r := Diagnose(fragments)
	if r.Cycle == nil {
		t.Fatal("expected a cycle")
	}
	if diff := cmp.Diff([]string{"A", "B"}, r.Cycle.Cycle); diff != "" {
		t.Errorf("Cycle mismatch (-want +got):\n%s", diff)
	}
	if r.Suggested != nil {
		t.Errorf("Suggested = %v, want nil with a cycle", r.Suggested)
	}
	if r.Clean() {
		t.Error("report with a cycle must not be clean")
	}
	if err := r.Enforce(Policy{UniqueProvides: true}); err != nil {
		t.Errorf("Enforce() error = %v, want nil", err)
	}

	err := r.Enforce(Policy{StrictOrder: true})
	var oe *OrderError
	if !errors.As(err, &oe) {
		t.Fatalf("Enforce(strict) error = %v, want *OrderError", err)
	}
	if oe.Cycle == nil {
		t.Error("OrderError should carry the cycle")
	}
}

func TestDiagnose_SelfProvidedDependencyIgnored(t *testing.T) {
	t.Parallel()

	r := Diagnose([]*fragment.Fragment{frag("web", "", "web")})
	if !r.Clean() {
		t.Errorf("expected clean report, got %+v", r)
	}
}

func TestInversion_String(t *testing.T) {
	t.Parallel()

	inv := Inversion{Fragment: "core", Label: "config", Providers: []string{"config", "config_env"}}
	if got, want := inv.String(), "core needs config (provided later by config, config_env)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

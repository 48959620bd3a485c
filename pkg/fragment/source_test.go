// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"errors"
	"path/filepath"
	"testing"

	"composer-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestNewDirSource_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir, ext         string
		wantDir, wantExt string
	}{
		{"", "", DefaultDir, DefaultExtension},
		{"frags", "rb", "frags", ".rb"},
		{"frags", ".sh", "frags", ".sh"},
	}

	for _, tt := range tests {
		s := NewDirSource(tt.dir, tt.ext)
		if s.Dir != tt.wantDir || s.Extension != tt.wantExt {
			t.Errorf("NewDirSource(%q, %q) = {%q, %q}, want {%q, %q}",
				tt.dir, tt.ext, s.Dir, s.Extension, tt.wantDir, tt.wantExt)
		}
	}
}

func TestDirSource_Locate(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{
		"core.py":       "",
		"web.py":        "",
		"web.cue":       "",
		"auth/basic.py": "",
	})
	s := NewDirSource(dir, ".py")

	tests := []struct {
		name string
		want Location
	}{
		{"core", Location{Path: filepath.Join(dir, "core.py"), Format: FormatText}},
		{"web", Location{Path: filepath.Join(dir, "web.cue"), Format: FormatDescriptor}},
		{"auth/basic", Location{Path: filepath.Join(dir, "auth", "basic.py"), Format: FormatText}},
	}

	for _, tt := range tests {
		got, err := s.Locate(tt.name)
		if err != nil {
			t.Errorf("Locate(%q) error = %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Locate(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestDirSource_LocateRejectsEscapingNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "secret.py"), "")
	s := NewDirSource(filepath.Join(root, "plugins"), ".py")

	for _, name := range []string{"", "../secret", "/etc/passwd", "a//b", "./core", "auth/../core"} {
		_, err := s.Locate(name)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Locate(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestDirSource_LocateDirectoryIsNotAFragment(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{"auth/basic.py": ""})
	testutil.MustWriteFile(t, filepath.Join(dir, "auth.py", "placeholder"), "")

	_, err := NewDirSource(dir, ".py").Locate("auth")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate(auth) error = %v, want ErrNotFound", err)
	}
}

func TestDirSource_Discover(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{
		"core.py":       "",
		"core.cue":      "",
		"item10.py":     "",
		"item2.py":      "",
		"web.cue":       "",
		"auth/basic.py": "",
		"README.md":     "",
	})

	got, err := NewDirSource(dir, ".py").Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"auth/basic", "core", "item2", "item10", "web"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDirSource_DiscoverMissingDir(t *testing.T) {
	t.Parallel()

	got, err := NewDirSource(filepath.Join(t.TempDir(), "nope"), ".py").Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover() = %v, want empty", got)
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	if FormatText.String() != "text" || FormatDescriptor.String() != "descriptor" {
		t.Errorf("unexpected format names %q, %q", FormatText, FormatDescriptor)
	}
}

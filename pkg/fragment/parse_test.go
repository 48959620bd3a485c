// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"composer-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func newTestParser(t *testing.T, dir string) *Parser {
	t.Helper()
	p, err := NewParser(NewDirSource(dir, DefaultExtension), DefaultSyntax())
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	return p
}

func TestParseText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *Fragment
	}{
		{
			name:  "empty source",
			input: "",
			want:  &Fragment{Name: "frag", Provides: "frag"},
		},
		{
			name: "all line kinds",
			input: strings.Join([]string{
				"from rugmi.plugins.core import response",
				"import os",
				"from collections import OrderedDict",
				"# rugmi: provides: web",
				"def handler():",
				"    return response(os.getcwd())",
			}, "\n"),
			want: &Fragment{
				Name:     "frag",
				Provides: "web",
				Depends:  []string{"core"},
				Imports:  []string{"import os", "from collections import OrderedDict"},
				Body:     []string{"def handler():", "    return response(os.getcwd())"},
			},
		},
		{
			name: "repeated internal import is one dependency",
			input: strings.Join([]string{
				"from rugmi.plugins.core import response",
				"from rugmi.plugins.config import settings",
				"from rugmi.plugins.core import request",
			}, "\n"),
			want: &Fragment{Name: "frag", Provides: "frag", Depends: []string{"core", "config"}},
		},
		{
			name: "last provides marker wins",
			input: strings.Join([]string{
				"# rugmi: provides: first",
				"# rugmi: provides: second",
			}, "\n"),
			want: &Fragment{Name: "frag", Provides: "second"},
		},
		{
			name: "trailing empty provides marker clears the label",
			input: strings.Join([]string{
				"# rugmi: provides: b",
				"# rugmi: provides:   ",
			}, "\n"),
			want: &Fragment{Name: "frag", Provides: ""},
		},
		{
			name: "provides marker after an empty one sets the label",
			input: strings.Join([]string{
				"# rugmi: provides:",
				"# rugmi: provides: web",
			}, "\n"),
			want: &Fragment{Name: "frag", Provides: "web"},
		},
		{
			name:  "trailing whitespace stripped and blank lines kept",
			input: "x = 1   \n\t\ny = 2\t\r\n",
			want:  &Fragment{Name: "frag", Provides: "frag", Body: []string{"x = 1", "", "y = 2"}},
		},
		{
			name: "lines that only look like imports are body",
			input: strings.Join([]string{
				"    import os",
				"importlib = None",
				"from here",
				"# import os",
			}, "\n"),
			want: &Fragment{
				Name:     "frag",
				Provides: "frag",
				Body:     []string{"    import os", "importlib = None", "from here", "# import os"},
			},
		},
		{
			name:  "bare internal package import is external",
			input: "from rugmi.plugins import core",
			want: &Fragment{
				Name:     "frag",
				Provides: "frag",
				Imports:  []string{"from rugmi.plugins import core"},
			},
		},
		{
			name:  "marker must start the line",
			input: "x = 1  # rugmi: provides: web",
			want:  &Fragment{Name: "frag", Provides: "frag", Body: []string{"x = 1  # rugmi: provides: web"}},
		},
	}

	p := newTestParser(t, t.TempDir())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.ParseText("frag", strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseText() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseText_CustomSyntax(t *testing.T) {
	t.Parallel()

	p, err := NewParser(NewDirSource(t.TempDir(), ""), Syntax{
		InternalPrefix: "app.parts.",
		ProvidesMarker: "// provides:",
	})
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}

	input := "from app.parts.db import conn\nfrom rugmi.plugins.core import x\n// provides: storage\n"
	got, err := p.ParseText("db_sql", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	want := &Fragment{
		Name:     "db_sql",
		Provides: "storage",
		Depends:  []string{"db"},
		Imports:  []string{"from rugmi.plugins.core import x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseText() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewParser_InvalidSyntax(t *testing.T) {
	t.Parallel()

	for _, syntax := range []Syntax{
		{InternalPrefix: "", ProvidesMarker: DefaultProvidesMarker},
		{InternalPrefix: DefaultInternalPrefix, ProvidesMarker: "  "},
	} {
		if _, err := NewParser(NewDirSource("", ""), syntax); err == nil {
			t.Errorf("NewParser(%+v) expected error", syntax)
		}
	}
}

func TestParse_TextSource(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{
		"core.py": "from rugmi.plugins.config import settings\nimport json\n\ndef respond():\n    pass\n",
	})
	p := newTestParser(t, dir)

	got, err := p.Parse("core")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Fragment{
		Name:     "core",
		Provides: "core",
		Depends:  []string{"config"},
		Imports:  []string{"import json"},
		Body:     []string{"", "def respond():", "    pass"},
		Origin:   filepath.Join(dir, "core.py"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Descriptor(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{
		"auth.cue": "provides: \"login\"\n" +
			"depends: [\"core\", \"config\", \"core\"]\n" +
			"imports: [\"import hashlib\"]\n" +
			"body: \"\"\"\n" +
			"\tdef check(user):\n" +
			"\t    return True\n" +
			"\t\"\"\"\n",
	})
	p := newTestParser(t, dir)

	got, err := p.Parse("auth")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Fragment{
		Name:     "auth",
		Provides: "login",
		Depends:  []string{"core", "config"},
		Imports:  []string{"import hashlib"},
		Body:     []string{"def check(user):", "    return True"},
		Origin:   filepath.Join(dir, "auth.cue"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DescriptorDefaults(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{"marker.cue": "{}\n"})
	got, err := newTestParser(t, dir).Parse("marker")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Provides != "marker" {
		t.Errorf("Provides = %q, want marker", got.Provides)
	}
	if got.HasBody() {
		t.Errorf("expected no body, got %q", got.Body)
	}
}

func TestParse_DescriptorPreferredOverText(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{
		"index.py":  "x = 'text'\n",
		"index.cue": "body: \"x = 'descriptor'\"\n",
	})
	got, err := newTestParser(t, dir).Parse("index")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"x = 'descriptor'"}, got.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InvalidDescriptor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: "bodyy: \"x\"\n"},
		{name: "label with whitespace", content: "depends: [\"two words\"]\n"},
		{name: "wrong type", content: "imports: \"import os\"\n"},
		{name: "syntax error", content: "body: \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.FragmentTree(t, map[string]string{"bad.cue": tt.content})
			_, err := newTestParser(t, dir).Parse("bad")
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if errors.Is(err, ErrNotFound) {
				t.Errorf("invalid descriptor reported as not found: %v", err)
			}
			if !strings.Contains(err.Error(), "bad") {
				t.Errorf("error %q does not name the fragment", err)
			}
		})
	}
}

func TestParse_NotFound(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{"core.py": ""})
	p := newTestParser(t, dir)

	_, err := p.Parse("z")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Parse() error = %v, want ErrNotFound", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Name != "z" {
		t.Errorf("Name = %q, want z", nf.Name)
	}
	wantTried := []string{filepath.Join(dir, "z.cue"), filepath.Join(dir, "z.py")}
	if diff := cmp.Diff(wantTried, nf.Tried); diff != "" {
		t.Errorf("Tried mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	dir := testutil.FragmentTree(t, map[string]string{"a.py": "", "b.py": ""})
	p := newTestParser(t, dir)

	got, err := p.ParseAll([]string{"a", "b"})
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, Names(got)); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	_, err = p.ParseAll([]string{"a", "missing", "also_missing"})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("ParseAll() error = %v, want NotFoundError for missing", err)
	}
}

// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultInternalPrefix is the module namespace under which fragments
	// import each other.
	DefaultInternalPrefix = "rugmi.plugins"
	// DefaultProvidesMarker starts a comment line that overrides Provides.
	DefaultProvidesMarker = "# rugmi: provides:"
)

// externalImportPattern matches any import-like directive that is not an
// internal fragment reference.
var externalImportPattern = regexp.MustCompile(`^(import .*|from .* import .*)$`)

type (
	// Syntax describes how metadata lines are recognised in textual fragments.
	Syntax struct {
		// InternalPrefix is the dotted namespace of fragment imports, e.g.
		// "rugmi.plugins" for `from rugmi.plugins.core import response`.
		InternalPrefix string
		// ProvidesMarker is the literal line prefix of a provides override.
		ProvidesMarker string
	}

	// lineKind classifies one source line.
	lineKind int

	// classifier is a compiled Syntax.
	classifier struct {
		internal *regexp.Regexp
		marker   string
	}
)

const (
	lineBody lineKind = iota
	lineInternal
	lineExternal
	lineProvides
)

// DefaultSyntax returns the syntax understood by stock fragments.
func DefaultSyntax() Syntax {
	return Syntax{
		InternalPrefix: DefaultInternalPrefix,
		ProvidesMarker: DefaultProvidesMarker,
	}
}

// Validate checks that both fields are set.
func (s Syntax) Validate() error {
	if strings.TrimSpace(s.InternalPrefix) == "" {
		return fmt.Errorf("syntax: internal prefix must not be empty")
	}
	if strings.TrimSpace(s.ProvidesMarker) == "" {
		return fmt.Errorf("syntax: provides marker must not be empty")
	}
	return nil
}

func (s Syntax) compile() (*classifier, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	prefix := regexp.QuoteMeta(strings.TrimSuffix(s.InternalPrefix, "."))
	internal, err := regexp.Compile(`^from ` + prefix + `\.(\S+) import .*$`)
	if err != nil {
		return nil, fmt.Errorf("syntax: internal prefix %q: %w", s.InternalPrefix, err)
	}
	return &classifier{internal: internal, marker: s.ProvidesMarker}, nil
}

// classify returns the kind of line together with its payload: the
// referenced capability for internal imports and the annotated label for
// provides overrides.
func (c *classifier) classify(line string) (lineKind, string) {
	switch {
	case strings.HasPrefix(line, "import "), strings.HasPrefix(line, "from "):
		if m := c.internal.FindStringSubmatch(line); m != nil {
			return lineInternal, m[1]
		}
		if externalImportPattern.MatchString(line) {
			return lineExternal, line
		}
	case strings.HasPrefix(line, c.marker):
		return lineProvides, strings.TrimSpace(line[len(c.marker):])
	}
	return lineBody, ""
}

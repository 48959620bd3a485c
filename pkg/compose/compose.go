// SPDX-License-Identifier: MPL-2.0

// Package compose assembles validated fragments into one artifact: a
// provenance header, the hoisted import block, then every body in request
// order. The same fragments always produce byte-identical output.
package compose

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"composer-cli/pkg/fragment"
)

const (
	// DefaultGenerator is the identity written into the header.
	DefaultGenerator = "composer"
	// DefaultInterpreter is the shebang target of the artifact.
	DefaultInterpreter = "/usr/bin/env python"
)

type (
	// Composer renders fragments. It is stateless between calls.
	Composer struct {
		interpreter string
	}

	// Option configures a Composer.
	Option func(*Composer)

	// Result is the composed artifact.
	Result struct {
		// Names lists the composed fragments in request order.
		Names []string
		// Imports is the hoisted, deduplicated, sorted import block.
		Imports []string
		// Text is the full artifact.
		Text []byte
	}
)

// WithInterpreter sets the shebang line target. An empty interpreter omits
// the shebang line.
func WithInterpreter(interpreter string) Option {
	return func(c *Composer) { c.interpreter = interpreter }
}

// New returns a Composer using DefaultInterpreter unless overridden.
func New(opts ...Option) *Composer {
	c := &Composer{interpreter: DefaultInterpreter}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders fragments under a header naming generator and the
// fragments used. It expects a set that already passed dependency checking
// and cannot fail.
func (c *Composer) Compose(generator string, fragments []*fragment.Fragment) *Result {
	if generator == "" {
		generator = DefaultGenerator
	}

	names := fragment.Names(fragments)
	imports := HoistImports(fragments)

	var buf bytes.Buffer
	buf.WriteString(c.Header(generator, names))
	for _, imp := range imports {
		buf.WriteString(imp)
		buf.WriteByte('\n')
	}
	for _, f := range fragments {
		if !f.HasBody() {
			continue
		}
		buf.WriteString(strings.Join(f.Body, "\n"))
		buf.WriteByte('\n')
	}

	return &Result{Names: names, Imports: imports, Text: buf.Bytes()}
}

// Header returns the provenance header, ending with a blank line.
func (c *Composer) Header(generator string, names []string) string {
	var b strings.Builder
	if c.interpreter != "" {
		b.WriteString("#!" + c.interpreter + "\n")
	}
	b.WriteString("# Automatically generated by " + generator + "\n")
	b.WriteString("# Plugins used: " + strings.Join(names, " ") + "\n")
	b.WriteString("\n")
	return b.String()
}

// HoistImports flattens every fragment's imports, drops exact duplicates and
// sorts by character count, then lexically. Source order is deliberately not
// kept so the block does not depend on request order.
func HoistImports(fragments []*fragment.Fragment) []string {
	seen := make(map[string]bool)
	var imports []string
	for _, f := range fragments {
		for _, imp := range f.Imports {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			imports = append(imports, imp)
		}
	}
	slices.SortFunc(imports, compareImports)
	return imports
}

func compareImports(a, b string) int {
	if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

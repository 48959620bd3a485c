// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"composer-cli/pkg/cueutil"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

//go:embed fragment_schema.cue
var descriptorSchema []byte

type (
	// Parser reads fragments from a Source.
	Parser struct {
		source     Source
		classifier *classifier
	}

	// descriptor is the decoded form of a CUE fragment document.
	descriptor struct {
		Provides string   `json:"provides"`
		Depends  []string `json:"depends"`
		Imports  []string `json:"imports"`
		Body     string   `json:"body"`
	}
)

// NewParser returns a Parser reading from source with the given syntax.
func NewParser(source Source, syntax Syntax) (*Parser, error) {
	c, err := syntax.compile()
	if err != nil {
		return nil, err
	}
	return &Parser{source: source, classifier: c}, nil
}

// Parse locates and parses the fragment called name. It returns a
// *NotFoundError when the source has nothing for name.
func (p *Parser) Parse(name string) (*Fragment, error) {
	loc, err := p.source.Locate(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(loc.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name, Tried: []string{loc.Path}}
		}
		return nil, fmt.Errorf("open fragment %q: %w", name, err)
	}
	defer f.Close()

	var frag *Fragment
	switch loc.Format {
	case FormatDescriptor:
		frag, err = p.parseDescriptor(name, loc.Path, f)
	default:
		frag, err = p.ParseText(name, f)
	}
	if err != nil {
		return nil, err
	}
	frag.Origin = loc.Path
	return frag, nil
}

// ParseAll parses each name in order and stops at the first failure.
func (p *Parser) ParseAll(names []string) ([]*Fragment, error) {
	fragments := make([]*Fragment, 0, len(names))
	for _, name := range names {
		frag, err := p.Parse(name)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
	}
	return fragments, nil
}

// ParseText classifies each line of r. Internal imports become dependencies,
// other imports are kept for hoisting, provides markers override the label
// (last one wins), and every other line is body. Trailing whitespace is
// stripped from every line.
func (p *Parser) ParseText(name string, r io.Reader) (*Fragment, error) {
	frag := &Fragment{Name: name, Provides: name}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		kind, payload := p.classifier.classify(line)
		switch kind {
		case lineInternal:
			frag.addDepend(payload)
		case lineExternal:
			frag.Imports = append(frag.Imports, payload)
		case lineProvides:
			// Last annotation wins; an empty one leaves no label.
			frag.Provides = payload
		default:
			frag.Body = append(frag.Body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fragment %q: %w", name, err)
	}
	return frag, nil
}

func (p *Parser) parseDescriptor(name, path string, r io.Reader) (*Fragment, error) {
	data, err := io.ReadAll(io.LimitReader(r, cueutil.DefaultMaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read fragment %q: %w", name, err)
	}

	result, err := cueutil.ParseAndDecode[descriptor](descriptorSchema, data, "#Fragment", cueutil.WithFilename(path))
	if err != nil {
		return nil, fmt.Errorf("parse fragment %q: %w", name, err)
	}
	d := result.Value

	frag := &Fragment{Name: name, Provides: name}
	if d.Provides != "" {
		frag.Provides = d.Provides
	}
	for _, dep := range d.Depends {
		frag.addDepend(dep)
	}
	for _, imp := range d.Imports {
		frag.Imports = append(frag.Imports, strings.TrimRight(imp, " \t\r"))
	}
	if body := strings.TrimRight(d.Body, "\n"); body != "" {
		for _, line := range strings.Split(body, "\n") {
			frag.Body = append(frag.Body, strings.TrimRight(line, " \t\r"))
		}
	}
	return frag, nil
}

// SPDX-License-Identifier: MPL-2.0

package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
)

const (
	// DefaultDir is the directory fragments are read from.
	DefaultDir = "plugins"
	// DefaultExtension is appended to a fragment name to find its textual source.
	DefaultExtension = ".py"
	// DescriptorExtension marks a structured CUE descriptor.
	DescriptorExtension = ".cue"
)

const (
	// FormatText is a source file whose metadata is recovered from its lines.
	FormatText Format = iota
	// FormatDescriptor is a CUE document validated against #Fragment.
	FormatDescriptor
)

type (
	// Format identifies how a located source must be parsed.
	Format int

	// Location is a resolved fragment source.
	Location struct {
		Path   string
		Format Format
	}

	// Source resolves fragment names to stored sources.
	Source interface {
		// Locate returns where the source for name lives, or a *NotFoundError.
		Locate(name string) (Location, error)
	}

	// DirSource maps a fragment name N to <Dir>/N.cue or <Dir>/N<Extension>,
	// preferring the descriptor when both exist.
	DirSource struct {
		Dir       string
		Extension string
	}
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatDescriptor {
		return "descriptor"
	}
	return "text"
}

// NewDirSource returns a DirSource rooted at dir. Empty arguments fall back
// to DefaultDir and DefaultExtension.
func NewDirSource(dir, ext string) *DirSource {
	if dir == "" {
		dir = DefaultDir
	}
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &DirSource{Dir: dir, Extension: ext}
}

// Locate implements Source.
func (s *DirSource) Locate(name string) (Location, error) {
	if !validName(name) {
		return Location{}, &NotFoundError{Name: name}
	}

	candidates := []Location{
		{Path: filepath.Join(s.Dir, filepath.FromSlash(name)+DescriptorExtension), Format: FormatDescriptor},
		{Path: filepath.Join(s.Dir, filepath.FromSlash(name)+s.Extension), Format: FormatText},
	}
	if s.Extension == DescriptorExtension {
		candidates = candidates[:1]
	}

	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		info, err := os.Stat(c.Path)
		switch {
		case err == nil && !info.IsDir():
			return c, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return Location{}, fmt.Errorf("stat %s: %w", c.Path, err)
		}
		tried = append(tried, c.Path)
	}
	return Location{}, &NotFoundError{Name: name, Tried: tried}
}

// Discover lists every fragment name available under the directory, in
// natural order. Nested directories yield slash-separated names.
func (s *DirSource) Discover() ([]string, error) {
	seen := make(map[string]bool)
	for _, ext := range []string{s.Extension, DescriptorExtension} {
		pattern := filepath.Join(s.Dir, "**", "*"+ext)
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(s.Dir, m)
			if err != nil {
				return nil, fmt.Errorf("relative path for %s: %w", m, err)
			}
			seen[filepath.ToSlash(strings.TrimSuffix(rel, ext))] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// validName rejects names that would escape the fragment directory.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// WriteFragments creates dir and writes one file per entry. Keys are file
// names relative to dir including the extension, e.g. "core.py" or
// "auth/basic.cue".
func WriteFragments(t testing.TB, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}

// FragmentTree returns a fresh plugins directory inside t.TempDir()
// populated with files.
func FragmentTree(t testing.TB, files map[string]string) string {
	t.Helper()
	return WriteFragments(t, filepath.Join(t.TempDir(), "plugins"), files)
}

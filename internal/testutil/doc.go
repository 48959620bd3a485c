// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors
// instead of returning them.
//
// Environment and directory helpers (MustSetenv, MustChdir, SetConfigHome)
// return cleanup functions suitable for t.Cleanup. WriteFragments lays out a
// plugins directory from an in-memory map.
package testutil

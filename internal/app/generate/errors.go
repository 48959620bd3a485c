// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"errors"
	"fmt"
)

// ErrWrite is the sentinel wrapped by WriteError.
var ErrWrite = errors.New("write artifact")

// WriteError is returned when composition succeeded but the artifact could
// not be written.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrWrite and the underlying error.
func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

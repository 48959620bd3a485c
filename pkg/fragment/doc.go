// SPDX-License-Identifier: MPL-2.0

// Package fragment turns a named unit of stored source into a Fragment: the
// capability it provides, the capabilities it depends on, the external import
// directives to hoist, and the remaining body lines.
//
// Two storage forms are understood. The textual form is plain source whose
// metadata is recovered line by line using a Syntax (internal import lines
// become dependencies, other import lines are hoisted, and a provides marker
// comment overrides the provided label). The descriptor form is a CUE document
// that states the same fields explicitly and is validated against #Fragment.
package fragment

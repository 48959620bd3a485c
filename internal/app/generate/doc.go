// SPDX-License-Identifier: MPL-2.0

// Package generate runs one composition end to end: expand the request
// tokens, parse each fragment, check dependencies, compose, and write the
// artifact. Nothing is written unless every earlier step succeeded.
package generate

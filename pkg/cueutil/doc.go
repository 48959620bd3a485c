// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Both the composer configuration file and structured fragment descriptors
// go through the same flow: compile the schema, compile the user document,
// unify the two under a root definition, validate, then decode into a Go
// value.
//
//	result, err := cueutil.ParseAndDecode[Descriptor](
//	    schemaBytes,
//	    data,
//	    "#Fragment",
//	    cueutil.WithFilename("plugins/core.cue"),
//	)
package cueutil

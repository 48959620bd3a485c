// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the composer command line.
//
// The root command composes fragments into one artifact:
//
//	composer <output-path> <token>...
//
// Subcommands list presets and fragments, inspect parsed fragment metadata,
// and manage the configuration file.
package cmd

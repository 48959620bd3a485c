// SPDX-License-Identifier: MPL-2.0

// Package request expands the token list given on the command line into the
// ordered list of fragment names to compose.
//
// Tokens are processed left to right against an accumulating list:
//
//   - an all upper-case token (DEFAULTS) names a preset whose fragment names
//     are appended in their fixed order;
//   - a token starting with "-" removes a name already in the list;
//   - anything else is a fragment name and is appended.
//
// Expansion is purely positional. It never consults fragment dependencies
// and never reorders the list.
package request

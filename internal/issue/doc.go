// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing failure context for the composer CLI.
//
// ActionableError wraps a cause with the operation that failed, the resource
// involved, and suggestions for fixing it. Issue holds a longer Markdown guide
// per failure kind, rendered with glamour when the user asks for an
// explanation.
package issue

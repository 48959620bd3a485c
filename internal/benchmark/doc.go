// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the composition hot paths:
//   - line classification of textual fragments
//   - CUE descriptor decoding
//   - fragment discovery under the plugins directory
//   - dependency checking and ordering diagnostics
//   - import hoisting and assembly
//   - the end-to-end generate pipeline
//
// To collect a CPU profile for PGO, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark

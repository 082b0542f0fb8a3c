// Package harness provides scenario-driven conformance testing for the
// rolodex store.
//
// Scenarios are YAML files describing a sequence of store operations
// with per-step expectations, plus assertions over the final state.
// The runner executes each scenario against a fresh store and records
// a trace of every operation and its outcome. Traces can be compared
// against golden files for exact regression coverage.
package harness

// Package orchestrator wires the schema loader, compiler, reducer and
// validator into per-page pipelines, providing dependency injection friendly
// helpers for consumers that prefer a single entry point.
package orchestrator

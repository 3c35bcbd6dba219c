// Package diag defines the diagnostic model shared by the type-expression
// parser, the casting engine and the batch driver.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// human-oriented message, a primary source.Span pointing at the offending
// substring, and optional secondary Notes. Producers emit through a Reporter
// so that storage and formatting stay decoupled; BagReporter aggregates into
// a Bag that supports sorting, deduplication and merging.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver and the CLI.
package diag

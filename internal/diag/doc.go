// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: Severity, a stable numeric Code, a
// human-oriented Message, the Primary source.Span, and optional Notes with
// secondary spans. Phases emit through a Reporter so that storage and
// formatting stay decoupled; BagReporter aggregates into a Bag, which
// supports sorting, deduplication, and merging across files.
//
// Rendering lives in internal/diagfmt. This package performs no IO and no
// formatting beyond Code's stable string form, so diagnostics can be
// serialized for caching and compared in tests.
package diag

// Package diag defines the diagnostic model shared by the lint engine,
// the fix applier, and the renderers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity (Info, Warning, Error), configured per rule.
//   - RuleID and MessageID, the stable identity of the finding.
//   - Message, the rendered template text.
//   - Primary span, the canonical source.Span pointing to the issue.
//   - Notes, optional secondary spans.
//   - Fixes, each an ordered list of disjoint TextEdit records.
//
// # Emitting diagnostics
//
// Rules never touch a Bag directly. The lint context builds a ReportBuilder
// and calls Emit, and a Reporter decides where the record goes: BagReporter
// stores it, DedupReporter drops repeats of the same rule/message/span.
//
// Package diag does no IO. Rendering lives in internal/diagfmt, applying
// fixes lives in internal/fix.
package diag

// Package diag defines the diagnostic model shared by the decoder, the
// normalizer and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form,
//     e.g. NRM2002 for an unmatched delimiter pair.
//   - Message – human oriented text; structural errors embed the offending
//     raw tokens as compact JSON.
//   - Primary range – the source.Range (R line/column coordinates) of the issue.
//   - Notes – optional secondary ranges/messages for additional context.
//
// # Collecting diagnostics
//
// Each file gets a Bag bounded by --max-diagnostics. A full bag counts what
// it rejects so the CLI can say how many were suppressed.
//
// Package diag does no IO. FormatGoldenDiagnostics and FormatShortDiagnostics
// only render to strings; the CLI decides where they go.
package diag

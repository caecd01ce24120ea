// Package diag defines the diagnostic model shared by all phases of the
// expansion pipeline.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the token-tree parser and the binding parser.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering lives in internal/diagfmt; orchestration lives in internal/driver.
//
// All binding-level failures (malformed grammar, empty argument list, invalid
// placeholder shape, unresolved override target) are detected before any tree
// walking begins and are fatal to the expansion of that declaration only; the
// engine never validates that generated code is semantically well-formed for a
// target type — that is out of its error taxonomy.
//
// Keep the data model deterministic: new fields should avoid side effects so
// the CLI and the expansion cache can safely serialise diagnostics.
package diag

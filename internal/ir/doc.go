// Package ir provides the wire-facing data model for lels.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. The engine packages (document,
// template, validate, complete, quickfix, highlight) produce these values and
// the outer layers (lsp, cli, harness) serialise them.
//
// Key design constraints:
//   - Lines and columns are 0-based; columns are byte offsets into the line
//   - The lsp package converts columns to UTF-16 at the protocol boundary
//   - All JSON tags use snake_case
package ir

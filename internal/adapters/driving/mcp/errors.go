// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Regwatch. It lets AI assistants diagnose chemicals, compare
// markets and search the synced regulation text.
package mcp

import "errors"

// ErrMissingDiagnosisService is returned when the diagnosis service is not provided.
var ErrMissingDiagnosisService = errors.New("mcp: diagnosis service is required")

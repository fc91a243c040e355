// Package mcp exposes the sample catalog to AI assistants over the
// Model Context Protocol.
package mcp

import "errors"

// ErrMissingCatalog is returned when the catalog service is not provided.
var ErrMissingCatalog = errors.New("mcp: catalog service is required")

// ErrMissingRunner is returned when the run service is not provided.
var ErrMissingRunner = errors.New("mcp: run service is required")

package tui

import "errors"

// ErrMissingCatalog is returned when the catalog service is not provided.
var ErrMissingCatalog = errors.New("tui: catalog service is required")

// ErrCancelled is returned by Browse when the user quits without choosing a sample.
var ErrCancelled = errors.New("tui: browse cancelled")

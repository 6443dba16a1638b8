package md2kdp

import (
	"errors"

	"github.com/alnah/go-md2kdp/internal/layout"
)

// Sentinel errors for library operations.
var (
	// ErrRender wraps failures of the document serializer. The underlying
	// cause stays reachable with errors.Is.
	ErrRender = errors.New("rendering failed")

	// ErrInvalidTheme indicates a theme that cannot produce a printable page.
	ErrInvalidTheme = layout.ErrInvalidTheme
)

package md2kdp

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2kdp/internal/anchor"
	"github.com/alnah/go-md2kdp/internal/blocks"
	"github.com/alnah/go-md2kdp/internal/frontmatter"
	"github.com/alnah/go-md2kdp/internal/layout"
)

// Public names for the compiler's data model.
type (
	// Metadata is the front matter key/value mapping.
	Metadata = frontmatter.Metadata
	// Block is one structural unit of the manuscript body.
	Block = blocks.Block
	// Summary counts parts, chapters and paragraphs.
	Summary = blocks.Summary
	// Collision reports two titles that share an anchor.
	Collision = anchor.Collision
	// Theme is the presentation configuration of a book.
	Theme = layout.Theme
	// Document is the assembled layout model.
	Document = layout.Document
)

// DefaultTheme returns the 6x9 trade paperback theme.
func DefaultTheme() Theme {
	return layout.DefaultTheme()
}

// Input contains the data for a single conversion.
type Input struct {
	Markdown string // Required: manuscript text, optionally with front matter

	// Defaults supplies metadata for keys the front matter omits.
	Defaults Metadata
}

// ConvertResult contains the outputs of a conversion.
type ConvertResult struct {
	DOCX       []byte   // WordprocessingML package
	Metadata   Metadata // Front matter merged with Input.Defaults
	Summary    Summary
	Document   *Document
	Collisions []Collision // Distinct titles sharing an anchor; only the first is bookmarked
}

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	theme    Theme
	logger   *zap.Logger
	now      func() time.Time
	fixZip   bool
	renderer documentRenderer
}

// WithTheme sets the book theme. The theme is validated by NewConverter.
func WithTheme(theme Theme) Option {
	return func(c *converterConfig) {
		c.theme = theme
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *converterConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for the default copyright year and the
// package creation date.
func WithClock(now func() time.Time) Option {
	return func(c *converterConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFixZip writes archives without data descriptors.
func WithFixZip(fix bool) Option {
	return func(c *converterConfig) {
		c.fixZip = fix
	}
}

package md2kdp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2kdp/internal/docx"
	"github.com/alnah/go-md2kdp/internal/layout"
)

// documentRenderer serializes an assembled document.
type documentRenderer interface {
	Render(w io.Writer, doc *layout.Document) error
}

// Compile-time interface implementation check.
var _ documentRenderer = (*docx.Renderer)(nil)

// Converter compiles manuscripts into print-ready .docx books.
// Create with NewConverter and use Convert for conversion.
// A Converter holds no per-book state and is safe for concurrent use.
type Converter struct {
	assembler *layout.Assembler
	renderer  documentRenderer
	log       *zap.Logger
}

// NewConverter creates a Converter with the default theme.
// Use options to customize behavior (e.g., WithTheme, WithLogger).
// Returns ErrInvalidTheme if the theme cannot produce a printable page.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		theme:  layout.DefaultTheme(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	assembler, err := layout.NewAssembler(cfg.theme, layout.WithNow(cfg.now))
	if err != nil {
		return nil, err
	}

	renderer := cfg.renderer
	if renderer == nil {
		renderer = docx.NewRenderer(
			docx.WithFixZip(cfg.fixZip),
			docx.WithClock(cfg.now),
			docx.WithLogger(cfg.logger),
		)
	}

	return &Converter{
		assembler: assembler,
		renderer:  renderer,
		log:       cfg.logger,
	}, nil
}

// Convert runs the full pipeline and returns the .docx package with the
// intermediate results. The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms := Compile(input.Markdown)
	meta := withDefaults(ms.Metadata, input.Defaults)
	c.log.Debug("Manuscript compiled",
		zap.Int("blocks", len(ms.Blocks)),
		zap.Int("parts", ms.Summary.Parts),
		zap.Int("chapters", ms.Summary.Chapters),
		zap.Int("paragraphs", ms.Summary.Paragraphs))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := c.assembler.Assemble(meta, ms.Blocks)
	for _, col := range doc.Collisions {
		c.log.Warn("Titles share an anchor, only the first is linked",
			zap.String("anchor", col.Anchor),
			zap.String("first", col.First),
			zap.String("duplicate", col.Duplicate))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.renderer.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return &ConvertResult{
		DOCX:       buf.Bytes(),
		Metadata:   meta,
		Summary:    ms.Summary,
		Document:   doc,
		Collisions: doc.Collisions,
	}, nil
}

// Theme returns the theme the converter applies.
func (c *Converter) Theme() Theme {
	return c.assembler.Theme()
}

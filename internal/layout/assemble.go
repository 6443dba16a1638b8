package layout

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alnah/go-md2kdp/internal/anchor"
	"github.com/alnah/go-md2kdp/internal/blocks"
	"github.com/alnah/go-md2kdp/internal/frontmatter"
	"github.com/alnah/go-md2kdp/internal/inline"
)

// indentState is the only memory carried from one body block to the next.
type indentState int

const (
	// normalIndent gives the next paragraph a first-line indent.
	normalIndent indentState = iota
	// suppressIndent follows titles and scene breaks.
	suppressIndent
)

// Assembler turns metadata and blocks into a Document.
// It holds no per-book state and may be shared between goroutines.
type Assembler struct {
	theme  Theme
	inline *inline.Parser
	hl     *highlighter
	now    func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithNow sets the clock used for the default copyright year.
func WithNow(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler validates theme and returns an Assembler that applies it.
func NewAssembler(theme Theme, opts ...AssemblerOption) (*Assembler, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	hl, err := newHighlighter(theme.CodeHighlightStyle)
	if err != nil {
		return nil, err
	}

	a := &Assembler{
		theme: theme,
		inline: &inline.Parser{
			CodeFont:    theme.Fonts.Code,
			CodeSize:    theme.Sizes.Code,
			CodeShading: theme.Colors.InlineCode,
			LinkColor:   theme.Colors.Link,
		},
		hl:  hl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Theme returns the theme the assembler applies.
func (a *Assembler) Theme() Theme {
	return a.theme
}

// Assemble lays out the book. Block order is preserved in both the table of
// contents and the body.
func (a *Assembler) Assemble(meta frontmatter.Metadata, seq []blocks.Block) *Document {
	if meta == nil {
		meta = frontmatter.Metadata{}
	}
	title := meta.Get(frontmatter.KeyTitle, a.theme.Labels.UntitledTitle)

	body, collisions := a.buildBody(seq)

	return &Document{
		Page:     a.theme.Page,
		Metadata: meta,
		Title:    title,
		Author:   meta.Get(frontmatter.KeyAuthor, a.theme.Labels.AnonymousAuthor),
		Sections: []Section{
			{Kind: TitlePage, Paragraphs: a.buildTitlePage(meta)},
			{Kind: CopyrightPage, Paragraphs: a.buildCopyrightPage(meta)},
			{Kind: TableOfContents, Paragraphs: a.buildTOC(seq), PageNumbers: true},
			{Kind: Body, Paragraphs: body, RunningHeader: title, PageNumbers: true},
		},
		Collisions: collisions,
		BaseStyle:  a.bodyStyle(),
		HeaderStyle: inline.Style{
			Font:   a.theme.Fonts.Body,
			Size:   a.theme.Sizes.Header,
			Italic: true,
			Color:  a.theme.Colors.Header,
		},
		FooterStyle: inline.Style{
			Font: a.theme.Fonts.Body,
			Size: a.theme.Sizes.Header,
		},
	}
}

func (a *Assembler) bodyStyle() inline.Style {
	return inline.Style{Font: a.theme.Fonts.Body, Size: a.theme.Sizes.Body}
}

func (a *Assembler) buildTitlePage(meta frontmatter.Metadata) []Paragraph {
	t := a.theme
	paras := []Paragraph{
		{Spacing: Spacing{Before: t.Spacing.TitleDrop}},
		{
			Align:   AlignCenter,
			Spacing: Spacing{After: 200},
			Runs: []Run{{
				Text:  meta.Get(frontmatter.KeyTitle, t.Labels.UntitledTitle),
				Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.Title, Bold: true},
			}},
		},
	}

	subtitle := meta.Has(frontmatter.KeySubtitle)
	if subtitle {
		paras = append(paras, Paragraph{
			Align:   AlignCenter,
			Spacing: Spacing{After: 600},
			Runs: []Run{{
				Text:  meta[frontmatter.KeySubtitle],
				Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.Subtitle, Italic: true},
			}},
		})
	}

	authorGap := 600
	if subtitle {
		authorGap = 0
	}
	return append(paras, Paragraph{
		Align:   AlignCenter,
		Spacing: Spacing{Before: authorGap},
		Runs: []Run{{
			Text:  meta.Get(frontmatter.KeyAuthor, t.Labels.AnonymousAuthor),
			Style: inline.Style{Font: t.Fonts.Body, Size: t.Sizes.Author},
		}},
	})
}

// copyrightNotice is the rights boilerplate, one printed line per entry.
var copyrightNotice = []string{
	"No part of this publication may be reproduced, distributed, or transmitted",
	"in any form or by any means without the prior written permission of the",
	"publisher, except in the case of brief quotations in reviews and certain",
	"other noncommercial uses permitted by copyright law.",
}

// copyrightLines returns the copyright page template. Empty strings are
// vertical gaps.
func (a *Assembler) copyrightLines(meta frontmatter.Metadata) []string {
	l := a.theme.Labels
	year := meta.Get(frontmatter.KeyYear, strconv.Itoa(a.now().Year()))

	lines := []string{
		fmt.Sprintf("Copyright © %s %s", year, meta.Get(frontmatter.KeyAuthor, l.CopyrightHolder)),
		"All rights reserved.",
		"",
	}
	lines = append(lines, copyrightNotice...)
	lines = append(lines, "", "Published by "+meta.Get(frontmatter.KeyPublisher, l.Publisher))

	if meta.Has(frontmatter.KeyISBN) {
		lines = append(lines, "", "ISBN: "+meta[frontmatter.KeyISBN])
	}
	lines = append(lines, "", "First Edition: "+year)
	if meta.Has(frontmatter.KeyWebsite) {
		lines = append(lines, "", meta[frontmatter.KeyWebsite])
	}
	return lines
}

func (a *Assembler) buildCopyrightPage(meta frontmatter.Metadata) []Paragraph {
	style := inline.Style{Font: a.theme.Fonts.Body, Size: a.theme.Sizes.Copyright}

	lines := a.copyrightLines(meta)
	paras := make([]Paragraph, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			paras = append(paras, Paragraph{Spacing: Spacing{After: 120}})
			continue
		}
		paras = append(paras, Paragraph{
			Spacing: Spacing{After: 40},
			Runs:    []Run{{Text: line, Style: style}},
		})
	}
	return paras
}

// buildTOC lists parts and chapters in document order. Each entry links to
// the anchor the body assigns to the same title.
func (a *Assembler) buildTOC(seq []blocks.Block) []Paragraph {
	t := a.theme
	paras := []Paragraph{{
		Align:   AlignCenter,
		Spacing: Spacing{Before: t.Spacing.ChapterDrop, After: 480},
		Runs: []Run{{
			Text:  t.Labels.TOCTitle,
			Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.ChapterTitle, Bold: true},
		}},
	}}

	for _, b := range seq {
		switch b := b.(type) {
		case blocks.Part:
			paras = append(paras, Paragraph{
				Spacing: Spacing{Before: 240, After: 80},
				Runs: []Run{{
					Text:   b.Title,
					Anchor: anchor.Slug(b.Title),
					Style:  inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.Section, Bold: true},
				}},
			})
		case blocks.Chapter:
			paras = append(paras, Paragraph{
				Spacing: Spacing{Before: 80, After: 80},
				Indent:  Indent{Left: t.Indents.TOCChapter},
				Runs: []Run{{
					Text:   b.Title,
					Anchor: anchor.Slug(b.Title),
					Style:  a.bodyStyle(),
				}},
			})
		}
	}
	return paras
}

func (a *Assembler) buildBody(seq []blocks.Block) ([]Paragraph, []anchor.Collision) {
	reg := anchor.NewRegistry()
	st := normalIndent

	var paras []Paragraph
	for i, b := range seq {
		var out []Paragraph
		out, st = a.layoutBlock(b, i == 0, st, reg)
		paras = append(paras, out...)
	}
	return paras, reg.Collisions()
}

// layoutBlock renders one block. first reports whether b opens the body; st
// is the indentation state left by the previous block and the returned state
// applies to the next one.
func (a *Assembler) layoutBlock(b blocks.Block, first bool, st indentState, reg *anchor.Registry) ([]Paragraph, indentState) {
	t := a.theme

	switch b := b.(type) {
	case blocks.Part:
		return []Paragraph{a.titleParagraph(b.Title, t.Spacing.PartDrop, 240, first, reg)}, suppressIndent

	case blocks.Chapter:
		return []Paragraph{a.titleParagraph(b.Title, t.Spacing.ChapterDrop, 200, first, reg)}, suppressIndent

	case blocks.Heading:
		return []Paragraph{{
			Spacing: Spacing{Before: 360, After: 120},
			Runs: []Run{{
				Text:  b.Title,
				Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.Section, Bold: true},
			}},
		}}, suppressIndent

	case blocks.Subheading:
		return []Paragraph{{
			Spacing: Spacing{Before: 240, After: 80},
			Runs: []Run{{
				Text:  b.Title,
				Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.Body, Bold: true, Italic: true},
			}},
		}}, suppressIndent

	case blocks.Paragraph:
		p := Paragraph{
			Spacing: Spacing{Line: t.Spacing.LineBody},
			Runs:    runsFromSpans(a.inline.Parse(b.Text, a.bodyStyle())),
		}
		if st == normalIndent {
			p.Indent.FirstLine = t.Indents.FirstLine
		}
		return []Paragraph{p}, normalIndent

	case blocks.Blockquote:
		return a.blockquote(b), normalIndent

	case blocks.CodeBlock:
		return a.codeBlock(b), normalIndent

	case blocks.List:
		return a.list(b), normalIndent

	case blocks.SceneBreak:
		return []Paragraph{{
			Align:   AlignCenter,
			Spacing: Spacing{Before: 240, After: 240},
			Runs:    []Run{{Text: t.Labels.SceneBreak, Style: a.bodyStyle()}},
		}}, suppressIndent
	}

	return nil, st
}

// titleParagraph lays out a part or chapter title. Every title after the
// first block starts a new page; only the first title claiming an anchor
// carries the bookmark.
func (a *Assembler) titleParagraph(title string, drop, after int, first bool, reg *anchor.Registry) Paragraph {
	t := a.theme
	p := Paragraph{
		Align:           AlignCenter,
		Spacing:         Spacing{Before: drop, After: after},
		PageBreakBefore: !first,
		Runs: []Run{{
			Text:  title,
			Style: inline.Style{Font: t.Fonts.Heading, Size: t.Sizes.ChapterTitle, Bold: true},
		}},
	}
	if id, claimed := reg.Resolve(title); claimed {
		p.Bookmark = id
	}
	return p
}

// edgeSpacing adds the block gap before the first and after the last line.
func edgeSpacing(i, n, gap, line int) Spacing {
	s := Spacing{Line: line}
	if i == 0 {
		s.Before = gap
	}
	if i == n-1 {
		s.After = gap
	}
	return s
}

func (a *Assembler) blockquote(b blocks.Blockquote) []Paragraph {
	t := a.theme
	base := a.bodyStyle()
	base.Italic = true

	lines := b.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}

	paras := make([]Paragraph, 0, len(lines))
	for i, line := range lines {
		paras = append(paras, Paragraph{
			Indent:     Indent{Left: t.Indents.Blockquote},
			Spacing:    edgeSpacing(i, len(lines), t.Spacing.BlockGap, t.Spacing.LineBody),
			LeftBorder: &Border{Color: t.Colors.Accent, Size: 6, Space: 10},
			Runs:       runsFromSpans(a.inline.Parse(line, base)),
		})
	}
	return paras
}

// codeBlock renders lines literally. An empty line prints as a single space
// so the shaded band keeps its height.
func (a *Assembler) codeBlock(b blocks.CodeBlock) []Paragraph {
	t := a.theme
	style := inline.Style{Font: t.Fonts.Code, Size: t.Sizes.Code}

	lines := b.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	colored := a.hl.lines(lines, b.Language, style)

	paras := make([]Paragraph, 0, len(lines))
	for i, line := range lines {
		runs := []Run{{Text: line, Style: style}}
		if colored != nil && len(colored[i]) > 0 {
			runs = colored[i]
		}
		if line == "" {
			runs = []Run{{Text: " ", Style: style}}
		}
		paras = append(paras, Paragraph{
			Indent:  Indent{Left: t.Indents.Code},
			Spacing: edgeSpacing(i, len(lines), t.Spacing.BlockGap, t.Spacing.LineCode),
			Shading: t.Colors.CodeBlock,
			Runs:    runs,
		})
	}
	return paras
}

func (a *Assembler) list(b blocks.List) []Paragraph {
	t := a.theme
	paras := make([]Paragraph, 0, len(b.Items))
	for i, item := range b.Items {
		marker := t.Labels.Bullet
		if b.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		runs := append([]Run{{Text: marker, Style: a.bodyStyle()}}, runsFromSpans(a.inline.Parse(item, a.bodyStyle()))...)
		paras = append(paras, Paragraph{
			Indent:  Indent{Left: t.Indents.ListLeft, Hanging: t.Indents.ListHanging},
			Spacing: Spacing{Line: t.Spacing.LineBody, After: 40},
			Runs:    runs,
		})
	}
	return paras
}

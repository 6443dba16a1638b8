// Package layout assembles parsed blocks into the four sections of a printed
// book: title page, copyright page, table of contents and body.
//
// The output is a presentation model. Serializing it into a file format is
// left to a renderer.
package layout

import (
	"github.com/alnah/go-md2kdp/internal/anchor"
	"github.com/alnah/go-md2kdp/internal/frontmatter"
	"github.com/alnah/go-md2kdp/internal/inline"
)

// Alignment is the horizontal justification of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// SectionKind identifies one of the top-level divisions of a book.
type SectionKind int

const (
	TitlePage SectionKind = iota
	CopyrightPage
	TableOfContents
	Body
)

func (k SectionKind) String() string {
	switch k {
	case TitlePage:
		return "title page"
	case CopyrightPage:
		return "copyright page"
	case TableOfContents:
		return "table of contents"
	case Body:
		return "body"
	}
	return "unknown"
}

// Spacing is paragraph spacing in twips. Line is in 240ths of a line; zero
// leaves the renderer default.
type Spacing struct {
	Before int
	After  int
	Line   int
}

// Indent is paragraph indentation in twips.
type Indent struct {
	Left      int
	FirstLine int
	Hanging   int
}

// Border is a single rule drawn beside a paragraph. Size is in eighths of a
// point and Space in points.
type Border struct {
	Color string
	Size  int
	Space int
}

// Run is a styled piece of paragraph text. URL makes it an external
// hyperlink; Anchor makes it a link to a bookmark in the same document.
type Run struct {
	Text   string
	Style  inline.Style
	URL    string
	Anchor string
}

// Paragraph is one presentation-level paragraph record.
type Paragraph struct {
	Align           Alignment
	Spacing         Spacing
	Indent          Indent
	PageBreakBefore bool
	// Bookmark names the anchor that wraps the paragraph runs.
	Bookmark   string
	LeftBorder *Border
	// Shading is the paragraph background color.
	Shading string
	Runs    []Run
}

// Section is one top-level division with its own header and footer policy.
// An empty RunningHeader means a blank header.
type Section struct {
	Kind          SectionKind
	Paragraphs    []Paragraph
	RunningHeader string
	PageNumbers   bool
}

// Document is the assembled book, ready for rendering.
type Document struct {
	Page     Page
	Metadata frontmatter.Metadata
	// Title and Author are the metadata values after defaults.
	Title  string
	Author string
	// Sections are always TitlePage, CopyrightPage, TableOfContents, Body.
	Sections   []Section
	Collisions []anchor.Collision
	// BaseStyle is the body text style, used as the document default.
	BaseStyle inline.Style
	// HeaderStyle and FooterStyle style the running header and page number.
	HeaderStyle inline.Style
	FooterStyle inline.Style
}

// Section returns the section of the given kind.
func (d *Document) Section(kind SectionKind) *Section {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i]
		}
	}
	return nil
}

// Text concatenates the visible text of the paragraph runs.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range p.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

func runsFromSpans(spans []inline.Span) []Run {
	runs := make([]Run, len(spans))
	for i, s := range spans {
		runs[i] = Run{Text: s.Text, Style: s.Style, URL: s.URL}
	}
	return runs
}

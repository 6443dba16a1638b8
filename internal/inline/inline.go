// Package inline resolves emphasis, code spans and hyperlinks within a line.
//
// Scanning is greedy and never backtracks: at each position the matchers are
// tried in a fixed priority order (bold, italic, code, link, plain run) and the
// first one that matches consumes its prefix. A special character that starts
// no valid pair is emitted as literal text, so every call makes progress.
package inline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind identifies the markup that produced a span.
type Kind int

const (
	PlainText Kind = iota
	Bold
	Italic
	Code
	Hyperlink
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Hyperlink:
		return "hyperlink"
	}
	return "unknown"
}

// HyperlinkStyle is the character style name applied to link runs.
const HyperlinkStyle = "Hyperlink"

// Style is the resolved presentation of a span.
// Size is in half-points; Color and Shading are RGB hex strings without '#'.
type Style struct {
	Font      string
	Size      int
	Bold      bool
	Italic    bool
	Color     string
	Shading   string
	CharStyle string
}

// Span is one styled run of text. URL is set for hyperlinks only.
type Span struct {
	Kind  Kind
	Text  string
	URL   string
	Style Style
}

// Parser holds the styles that do not derive from the base style.
type Parser struct {
	CodeFont    string
	CodeSize    int
	CodeShading string
	LinkColor   string
}

// Precompiled span patterns, anchored at the cursor.
var (
	boldPattern   = regexp.MustCompile(`^\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`^\*(.+?)\*`)
	codePattern   = regexp.MustCompile("^`(.+?)`")
	linkPattern   = regexp.MustCompile(`^\[(.+?)\]\((.+?)\)`)
	plainPattern  = regexp.MustCompile("^[^*`\\[]+")
)

// matcher recognizes a span at the start of s and returns it with the
// number of bytes consumed.
type matcher func(p *Parser, s string, base Style) (Span, int, bool)

// matchers are tried in priority order at every position.
var matchers = []matcher{
	(*Parser).bold,
	(*Parser).italic,
	(*Parser).code,
	(*Parser).link,
	(*Parser).plain,
}

// Parse converts text into spans covering all of it, in reading order.
// Empty text yields a single plain span.
func (p *Parser) Parse(text string, base Style) []Span {
	var spans []Span
	rest := text

	for rest != "" {
		span, n, ok := p.next(rest, base)
		if !ok {
			_, n = utf8.DecodeRuneInString(rest)
			span = Span{Kind: PlainText, Text: rest[:n], Style: base}
		}
		spans = append(spans, span)
		rest = rest[n:]
	}

	if len(spans) == 0 {
		spans = append(spans, Span{Kind: PlainText, Text: text, Style: base})
	}
	return spans
}

func (p *Parser) next(s string, base Style) (Span, int, bool) {
	for _, m := range matchers {
		if span, n, ok := m(p, s, base); ok {
			return span, n, true
		}
	}
	return Span{}, 0, false
}

func (p *Parser) bold(s string, base Style) (Span, int, bool) {
	m := boldPattern.FindStringSubmatch(s)
	if m == nil {
		return Span{}, 0, false
	}
	st := base
	st.Bold = true
	return Span{Kind: Bold, Text: m[1], Style: st}, len(m[0]), true
}

func (p *Parser) italic(s string, base Style) (Span, int, bool) {
	m := italicPattern.FindStringSubmatch(s)
	if m == nil {
		return Span{}, 0, false
	}
	st := base
	st.Italic = true
	return Span{Kind: Italic, Text: m[1], Style: st}, len(m[0]), true
}

func (p *Parser) code(s string, base Style) (Span, int, bool) {
	m := codePattern.FindStringSubmatch(s)
	if m == nil {
		return Span{}, 0, false
	}
	st := Style{
		Font:    p.CodeFont,
		Size:    p.CodeSize,
		Bold:    base.Bold,
		Italic:  base.Italic,
		Shading: p.CodeShading,
	}
	return Span{Kind: Code, Text: m[1], Style: st}, len(m[0]), true
}

// link keeps the base font and size only; emphasis does not carry into links.
func (p *Parser) link(s string, base Style) (Span, int, bool) {
	m := linkPattern.FindStringSubmatch(s)
	if m == nil {
		return Span{}, 0, false
	}
	st := Style{
		Font:      base.Font,
		Size:      base.Size,
		Color:     p.LinkColor,
		CharStyle: HyperlinkStyle,
	}
	return Span{Kind: Hyperlink, Text: m[1], URL: m[2], Style: st}, len(m[0]), true
}

func (p *Parser) plain(s string, base Style) (Span, int, bool) {
	loc := plainPattern.FindStringIndex(s)
	if loc == nil {
		return Span{}, 0, false
	}
	return Span{Kind: PlainText, Text: s[:loc[1]], Style: base}, loc[1], true
}

// Text concatenates the visible text of spans.
func Text(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

package blocks

import (
	"regexp"
	"strings"
)

// codeFence opens and closes a fenced code block.
const codeFence = "```"

// Precompiled line patterns.
var (
	sceneBreakPattern    = regexp.MustCompile(`^(---|___|\*\*\*|\* \* \*)$`)
	blockquoteMarker     = regexp.MustCompile(`^>\s?`)
	unorderedListPattern = regexp.MustCompile(`^[-*+] `)
	orderedListPattern   = regexp.MustCompile(`^[0-9]+\. `)
)

// scanner is a forward-only cursor over the body lines.
type scanner struct {
	lines []string
	pos   int
}

func (s *scanner) done() bool   { return s.pos >= len(s.lines) }
func (s *scanner) line() string { return s.lines[s.pos] }
func (s *scanner) advance()     { s.pos++ }

// rule tries to recognize a block at the cursor. A rule that matches
// consumes at least one line and reports matched; it may return a nil
// block for lines that produce nothing.
type rule func(s *scanner) (b Block, matched bool)

// rules are tried in order at every cursor position; the first match wins.
// The scene break rule must precede the blockquote and list rules.
var rules = []rule{
	blankLine,
	fencedCode,
	titleLine("# ", func(t string) Block { return Part{Title: t} }),
	titleLine("## ", func(t string) Block { return Chapter{Title: t} }),
	titleLine("### ", func(t string) Block { return Heading{Title: t} }),
	titleLine("#### ", func(t string) Block { return Subheading{Title: t} }),
	sceneBreak,
	blockquote,
	list(unorderedListPattern, false),
	list(orderedListPattern, true),
	paragraph,
}

// Parse splits body into blocks in reading order.
// Each physical line that matches no other rule becomes its own Paragraph.
func Parse(body string) []Block {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	s := &scanner{lines: lines}
	var seq []Block
	for !s.done() {
		for _, r := range rules {
			b, ok := r(s)
			if !ok {
				continue
			}
			if b != nil {
				seq = append(seq, b)
			}
			break
		}
	}
	return seq
}

func blankLine(s *scanner) (Block, bool) {
	if strings.TrimSpace(s.line()) != "" {
		return nil, false
	}
	s.advance()
	return nil, true
}

// fencedCode collects lines up to the next fence. A missing closing fence
// consumes the rest of the input.
func fencedCode(s *scanner) (Block, bool) {
	open := strings.TrimSpace(s.line())
	if !strings.HasPrefix(open, codeFence) {
		return nil, false
	}
	code := CodeBlock{Language: strings.TrimSpace(open[len(codeFence):])}
	s.advance()

	for !s.done() && !strings.HasPrefix(strings.TrimSpace(s.line()), codeFence) {
		code.Lines = append(code.Lines, s.line())
		s.advance()
	}
	if !s.done() {
		s.advance()
	}
	return code, true
}

func titleLine(prefix string, build func(title string) Block) rule {
	return func(s *scanner) (Block, bool) {
		line := s.line()
		if !strings.HasPrefix(line, prefix) {
			return nil, false
		}
		s.advance()
		return build(strings.TrimSpace(line[len(prefix):])), true
	}
}

func sceneBreak(s *scanner) (Block, bool) {
	if !sceneBreakPattern.MatchString(strings.TrimSpace(s.line())) {
		return nil, false
	}
	s.advance()
	return SceneBreak{}, true
}

func blockquote(s *scanner) (Block, bool) {
	isQuote := func(l string) bool { return strings.HasPrefix(strings.TrimSpace(l), ">") }
	if !isQuote(s.line()) {
		return nil, false
	}

	var q Blockquote
	for !s.done() && isQuote(s.line()) {
		q.Lines = append(q.Lines, blockquoteMarker.ReplaceAllString(strings.TrimSpace(s.line()), ""))
		s.advance()
	}
	return q, true
}

func list(marker *regexp.Regexp, ordered bool) rule {
	return func(s *scanner) (Block, bool) {
		if !marker.MatchString(s.line()) {
			return nil, false
		}

		l := List{Ordered: ordered}
		for !s.done() && marker.MatchString(s.line()) {
			l.Items = append(l.Items, strings.TrimSpace(marker.ReplaceAllString(s.line(), "")))
			s.advance()
		}
		return l, true
	}
}

func paragraph(s *scanner) (Block, bool) {
	text := strings.TrimSpace(s.line())
	s.advance()
	return Paragraph{Text: text}, true
}

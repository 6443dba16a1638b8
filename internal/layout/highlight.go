package layout

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2kdp/internal/inline"
)

// highlighter colors code block lines with a chroma style.
// Only the color, weight and slant of runs change; text is preserved.
type highlighter struct {
	style *chroma.Style
}

func newHighlighter(name string) (*highlighter, error) {
	if name == "" {
		return nil, nil
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown code highlight style %q", ErrInvalidTheme, name)
	}
	return &highlighter{style: style}, nil
}

// lines returns one run slice per input line, or nil when the language is
// unknown or tokenizing would alter the text.
func (h *highlighter) lines(code []string, language string, base inline.Style) [][]Run {
	if h == nil || language == "" || len(code) == 0 {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, strings.Join(code, "\n"))
	if err != nil {
		return nil
	}

	out := make([][]Run, 1, len(code))
	for tok := it(); tok != chroma.EOF; tok = it() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, nil)
			}
			if part == "" {
				continue
			}
			last := len(out) - 1
			out[last] = append(out[last], Run{Text: part, Style: h.styleFor(tok.Type, base)})
		}
	}

	// Lexers may append a trailing newline.
	if len(out) > len(code) {
		out = out[:len(code)]
	}
	if len(out) != len(code) {
		return nil
	}
	for i, runs := range out {
		if (Paragraph{Runs: runs}).Text() != code[i] {
			return nil
		}
	}
	return out
}

func (h *highlighter) styleFor(t chroma.TokenType, base inline.Style) inline.Style {
	entry := h.style.Get(t)
	st := base
	if entry.Colour.IsSet() {
		st.Color = strings.ToUpper(strings.TrimPrefix(entry.Colour.String(), "#"))
	}
	if entry.Bold == chroma.Yes {
		st.Bold = true
	}
	if entry.Italic == chroma.Yes {
		st.Italic = true
	}
	return st
}

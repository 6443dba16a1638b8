package md2kdp

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2kdp/internal/blocks"
	"github.com/alnah/go-md2kdp/internal/frontmatter"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Manuscript is a parsed manuscript: metadata, trimmed body and blocks in
// reading order.
type Manuscript struct {
	Metadata Metadata
	Body     string
	Blocks   []Block
	Summary  Summary
}

// Compile parses manuscript text without laying it out. It never fails:
// malformed front matter is treated as body text and an unterminated code
// fence runs to the end of the input.
func Compile(markdown string) *Manuscript {
	meta, body := frontmatter.Extract(normalizeLineEndings(markdown))
	body = strings.TrimSpace(body)
	seq := blocks.Parse(body)

	return &Manuscript{
		Metadata: meta,
		Body:     body,
		Blocks:   seq,
		Summary:  blocks.Summarize(seq),
	}
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// withDefaults returns meta with every key of defaults it lacks.
func withDefaults(meta, defaults Metadata) Metadata {
	merged := make(Metadata, len(meta)+len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range meta {
		merged[k] = v
	}
	return merged
}

// Package frontmatter splits the leading metadata block from a manuscript.
//
// The block is a flat list of "key: value" lines fenced by "---" lines. It is
// deliberately not YAML: values stay strings, and lines without a colon are
// skipped instead of failing the whole manuscript.
package frontmatter

import "strings"

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

// Recognized metadata keys.
const (
	KeyTitle     = "title"
	KeySubtitle  = "subtitle"
	KeyAuthor    = "author"
	KeyPublisher = "publisher"
	KeyYear      = "year"
	KeyISBN      = "isbn"
	KeyWebsite   = "website"
)

// Metadata maps front matter keys to their string values.
// Unrecognized keys are retained.
type Metadata map[string]string

// Get returns the value for key, or fallback when the key is absent or empty.
func (m Metadata) Get(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Has reports whether key carries a non-empty value.
func (m Metadata) Has(key string) bool {
	return m[key] != ""
}

// quotePairs lists the opening and closing quote characters stripped from values.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// Extract splits text into its metadata and the remaining body.
//
// Text must start with a Delimiter line and contain a closing Delimiter line;
// otherwise an empty Metadata and the original text are returned. The body
// after the closing delimiter is trimmed. Input is expected to use "\n" line
// endings.
func Extract(text string) (Metadata, string) {
	meta := Metadata{}

	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, " \t") != Delimiter {
		return meta, text
	}

	lines := strings.Split(rest, "\n")
	closing := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == Delimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return meta, text
	}

	for _, line := range lines[:closing] {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		meta[key] = value
	}

	body := strings.Join(lines[closing+1:], "\n")
	return meta, strings.TrimSpace(body)
}

// parseLine splits a "key: value" line on its first colon.
func parseLine(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(v)), true
}

// unquote strips one layer of matching surrounding quotes.
func unquote(s string) string {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return s[len(q[0]) : len(s)-len(q[1])]
		}
	}
	return s
}

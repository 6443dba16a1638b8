// Package blocks segments a manuscript body into typed structural blocks.
package blocks

// Block is one structural unit of a manuscript body.
// The concrete types below are the only implementations.
type Block interface {
	block()
}

// Part is a "# " title that opens a group of chapters.
type Part struct {
	Title string
}

// Chapter is a "## " title.
type Chapter struct {
	Title string
}

// Heading is a "### " section title inside a chapter.
type Heading struct {
	Title string
}

// Subheading is a "#### " title.
type Subheading struct {
	Title string
}

// Paragraph holds one physical line of prose, inline markup unparsed.
type Paragraph struct {
	Text string
}

// Blockquote holds consecutive "> " lines with their markers stripped.
type Blockquote struct {
	Lines []string
}

// CodeBlock holds the verbatim lines of a fenced code block.
// Language is empty when the opening fence carries no tag.
type CodeBlock struct {
	Lines    []string
	Language string
}

// List holds consecutive list items with their markers stripped.
type List struct {
	Items   []string
	Ordered bool
}

// SceneBreak is an explicit narrative break marker.
type SceneBreak struct{}

func (Part) block()       {}
func (Chapter) block()    {}
func (Heading) block()    {}
func (Subheading) block() {}
func (Paragraph) block()  {}
func (Blockquote) block() {}
func (CodeBlock) block()  {}
func (List) block()       {}
func (SceneBreak) block() {}

// Summary counts the blocks used for progress reporting.
type Summary struct {
	Parts      int
	Chapters   int
	Paragraphs int
}

// Summarize counts parts, chapters and paragraphs in seq.
func Summarize(seq []Block) Summary {
	var s Summary
	for _, b := range seq {
		switch b.(type) {
		case Part:
			s.Parts++
		case Chapter:
			s.Chapters++
		case Paragraph:
			s.Paragraphs++
		}
	}
	return s
}

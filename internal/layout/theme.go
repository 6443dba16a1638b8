package layout

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidTheme indicates a theme value that cannot produce a printable page.
var ErrInvalidTheme = errors.New("invalid theme")

// TwipsPerInch converts inches to twentieths of a point.
const TwipsPerInch = 1440

// Inches converts a length in inches to twips.
func Inches(in float64) int {
	return int(math.Round(in * TwipsPerInch))
}

// Margins are page margins in twips. Left is the inside (gutter) margin.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Header int `yaml:"header"`
	Footer int `yaml:"footer"`
}

// Page is the trim size and margins applied to every section, in twips.
type Page struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Margins Margins `yaml:"margins"`
}

// TrimSizes are the supported paperback trim presets, width x height in inches.
var TrimSizes = map[string][2]float64{
	"5x8":     {5, 8},
	"5.25x8":  {5.25, 8},
	"5.5x8.5": {5.5, 8.5},
	"6x9":     {6, 9},
	"7x10":    {7, 10},
	"8.5x11":  {8.5, 11},
}

// DefaultTrim is the standard trade paperback size.
const DefaultTrim = "6x9"

// TrimNames returns the supported trim preset names, sorted.
func TrimNames() []string {
	names := make([]string, 0, len(TrimSizes))
	for n := range TrimSizes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithTrim returns a copy of p resized to the named trim preset.
func (p Page) WithTrim(name string) (Page, error) {
	size, ok := TrimSizes[strings.ToLower(name)]
	if !ok {
		return p, fmt.Errorf("%w: unknown trim size %q (supported: %s)", ErrInvalidTheme, name, strings.Join(TrimNames(), ", "))
	}
	p.Width = Inches(size[0])
	p.Height = Inches(size[1])
	return p, nil
}

// Fonts names the three font families used by a book.
type Fonts struct {
	Body    string `yaml:"body"`
	Heading string `yaml:"heading"`
	Code    string `yaml:"code"`
}

// Sizes are font sizes in half-points (22 = 11pt).
type Sizes struct {
	Body         int `yaml:"body"`
	ChapterTitle int `yaml:"chapterTitle"`
	Section      int `yaml:"section"`
	Code         int `yaml:"code"`
	Header       int `yaml:"header"`
	Title        int `yaml:"title"`
	Subtitle     int `yaml:"subtitle"`
	Author       int `yaml:"author"`
	Copyright    int `yaml:"copyright"`
}

// Rhythm holds vertical rhythm values in twips. Line values are in 240ths
// of a line (240 = single spacing).
type Rhythm struct {
	LineBody    int `yaml:"lineBody"`
	LineCode    int `yaml:"lineCode"`
	TitleDrop   int `yaml:"titleDrop"`
	PartDrop    int `yaml:"partDrop"`
	ChapterDrop int `yaml:"chapterDrop"`
	BlockGap    int `yaml:"blockGap"`
}

// Indents are horizontal offsets in twips.
type Indents struct {
	FirstLine   int `yaml:"firstLine"`
	Blockquote  int `yaml:"blockquote"`
	Code        int `yaml:"code"`
	ListLeft    int `yaml:"listLeft"`
	ListHanging int `yaml:"listHanging"`
	TOCChapter  int `yaml:"tocChapter"`
}

// Colors are RGB hex values without a leading '#'.
type Colors struct {
	Accent     string `yaml:"accent"`
	CodeBlock  string `yaml:"codeBlock"`
	InlineCode string `yaml:"inlineCode"`
	Link       string `yaml:"link"`
	Header     string `yaml:"header"`
}

// Labels are the fixed strings a book prints when metadata is missing.
type Labels struct {
	TOCTitle        string `yaml:"tocTitle"`
	SceneBreak      string `yaml:"sceneBreak"`
	Bullet          string `yaml:"bullet"`
	UntitledTitle   string `yaml:"untitled"`
	AnonymousAuthor string `yaml:"anonymous"`
	CopyrightHolder string `yaml:"copyrightHolder"`
	Publisher       string `yaml:"publisher"`
}

// Theme is the complete, immutable presentation configuration of a book.
// It is passed by value to the Assembler.
type Theme struct {
	Page    Page    `yaml:"page"`
	Fonts   Fonts   `yaml:"fonts"`
	Sizes   Sizes   `yaml:"sizes"`
	Spacing Rhythm  `yaml:"spacing"`
	Indents Indents `yaml:"indents"`
	Colors  Colors  `yaml:"colors"`
	Labels  Labels  `yaml:"labels"`

	// CodeHighlightStyle names a chroma style used to color fenced code
	// blocks that carry a language tag. Empty disables coloring.
	CodeHighlightStyle string `yaml:"codeHighlightStyle"`
}

// DefaultTheme returns the 6x9 trade paperback theme.
func DefaultTheme() Theme {
	return Theme{
		Page: Page{
			Width:  Inches(6),
			Height: Inches(9),
			Margins: Margins{
				Top:    Inches(0.75),
				Bottom: Inches(0.75),
				Left:   Inches(0.75),
				Right:  Inches(0.5),
				Header: Inches(0.5),
				Footer: Inches(0.5),
			},
		},
		Fonts: Fonts{
			Body:    "Georgia",
			Heading: "Arial",
			Code:    "Courier New",
		},
		Sizes: Sizes{
			Body:         22,
			ChapterTitle: 48,
			Section:      26,
			Code:         20,
			Header:       18,
			Title:        72,
			Subtitle:     36,
			Author:       28,
			Copyright:    20,
		},
		Spacing: Rhythm{
			LineBody:    312,
			LineCode:    240,
			TitleDrop:   Inches(2.5),
			PartDrop:    Inches(3),
			ChapterDrop: Inches(2.25),
			BlockGap:    160,
		},
		Indents: Indents{
			FirstLine:   Inches(0.3),
			Blockquote:  Inches(0.4),
			Code:        Inches(0.2),
			ListLeft:    Inches(0.5),
			ListHanging: Inches(0.25),
			TOCChapter:  Inches(0.3),
		},
		Colors: Colors{
			Accent:     "008080",
			CodeBlock:  "F2F2F2",
			InlineCode: "E8E8E8",
			Link:       "0563C1",
			Header:     "666666",
		},
		Labels: Labels{
			TOCTitle:        "Table of Contents",
			SceneBreak:      "*  *  *",
			Bullet:          "• ",
			UntitledTitle:   "Untitled",
			AnonymousAuthor: "Anonymous",
			CopyrightHolder: "the author",
			Publisher:       "Self-published",
		},
	}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks that the theme describes a printable page.
func (t Theme) Validate() error {
	p := t.Page
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: page size %dx%d twips", ErrInvalidTheme, p.Width, p.Height)
	}
	m := p.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 || m.Header < 0 || m.Footer < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidTheme)
	}
	if p.Width-m.Left-m.Right <= 0 || p.Height-m.Top-m.Bottom <= 0 {
		return fmt.Errorf("%w: margins leave no text area", ErrInvalidTheme)
	}

	fonts := []struct{ name, value string }{
		{"body", t.Fonts.Body},
		{"heading", t.Fonts.Heading},
		{"code", t.Fonts.Code},
	}
	for _, f := range fonts {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s font is empty", ErrInvalidTheme, f.name)
		}
	}

	s := t.Sizes
	for _, v := range []int{s.Body, s.ChapterTitle, s.Section, s.Code, s.Header, s.Title, s.Subtitle, s.Author, s.Copyright} {
		if v <= 0 {
			return fmt.Errorf("%w: font sizes must be positive", ErrInvalidTheme)
		}
	}
	if t.Spacing.LineBody <= 0 || t.Spacing.LineCode <= 0 {
		return fmt.Errorf("%w: line spacing must be positive", ErrInvalidTheme)
	}

	c := t.Colors
	colors := []struct{ name, value string }{
		{"accent", c.Accent},
		{"codeBlock", c.CodeBlock},
		{"inlineCode", c.InlineCode},
		{"link", c.Link},
		{"header", c.Header},
	}
	for _, col := range colors {
		if !hexColor.MatchString(col.value) {
			return fmt.Errorf("%w: colors.%s %q is not a 6-digit hex color", ErrInvalidTheme, col.name, col.value)
		}
	}
	return nil
}

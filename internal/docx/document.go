package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2kdp/internal/inline"
	"github.com/alnah/go-md2kdp/internal/layout"
)

var alignments = map[layout.Alignment]string{
	layout.AlignLeft:   "left",
	layout.AlignCenter: "center",
	layout.AlignRight:  "right",
}

// document builds word/document.xml. Each layout section ends with its own
// w:sectPr: inside the last paragraph for all but the final section, and as
// the last child of w:body for the final one.
func (p *pkg) document() *etree.Document {
	d := newXML()
	root := d.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	body := root.CreateElement("w:body")

	last := len(p.doc.Sections) - 1
	for i := range p.doc.Sections {
		s := &p.doc.Sections[i]
		sectPr := p.sectionProperties(i, s)

		paras := s.Paragraphs
		if len(paras) == 0 {
			paras = []layout.Paragraph{{}}
		}
		for j, para := range paras {
			el := p.paragraph(body, para)
			if i != last && j == len(paras)-1 {
				paragraphProperties(el).AddChild(sectPr)
			}
		}
		if i == last {
			body.AddChild(sectPr)
		}
	}
	return d
}

func (p *pkg) sectionProperties(i int, s *layout.Section) *etree.Element {
	sectPr := etree.NewElement("w:sectPr")

	hdr := sectPr.CreateElement("w:headerReference")
	hdr.CreateAttr("w:type", "default")
	hdr.CreateAttr("r:id", p.sectionHeader(i, s))

	ftr := sectPr.CreateElement("w:footerReference")
	ftr.CreateAttr("w:type", "default")
	ftr.CreateAttr("r:id", p.sectionFooter(i, s))

	if i > 0 {
		sectPr.CreateElement("w:type").CreateAttr("w:val", "nextPage")
	}

	page := p.doc.Page
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", strconv.Itoa(page.Width))
	pgSz.CreateAttr("w:h", strconv.Itoa(page.Height))

	m := page.Margins
	pgMar := sectPr.CreateElement("w:pgMar")
	for _, a := range [][2]string{
		{"w:top", strconv.Itoa(m.Top)},
		{"w:right", strconv.Itoa(m.Right)},
		{"w:bottom", strconv.Itoa(m.Bottom)},
		{"w:left", strconv.Itoa(m.Left)},
		{"w:header", strconv.Itoa(m.Header)},
		{"w:footer", strconv.Itoa(m.Footer)},
		{"w:gutter", "0"},
	} {
		pgMar.CreateAttr(a[0], a[1])
	}
	return sectPr
}

// paragraphProperties returns the w:pPr child of a paragraph, creating it
// as the first child when absent.
func paragraphProperties(para *etree.Element) *etree.Element {
	if pPr := para.SelectElement("w:pPr"); pPr != nil {
		return pPr
	}
	pPr := etree.NewElement("w:pPr")
	para.InsertChildAt(0, pPr)
	return pPr
}

func (p *pkg) paragraph(parent *etree.Element, para layout.Paragraph) *etree.Element {
	el := parent.CreateElement("w:p")
	writeParagraphProperties(el, para)

	var bookmarkID string
	if para.Bookmark != "" {
		bookmarkID = strconv.Itoa(p.bookmarks)
		p.bookmarks++
		start := el.CreateElement("w:bookmarkStart")
		start.CreateAttr("w:id", bookmarkID)
		start.CreateAttr("w:name", para.Bookmark)
	}

	for _, run := range para.Runs {
		switch {
		case run.Anchor != "":
			link := el.CreateElement("w:hyperlink")
			link.CreateAttr("w:anchor", run.Anchor)
			link.CreateAttr("w:history", "1")
			writeRun(link, run.Text, run.Style)
		case run.URL != "":
			link := el.CreateElement("w:hyperlink")
			link.CreateAttr("r:id", p.hyperlinkRel(run.URL))
			link.CreateAttr("w:history", "1")
			writeRun(link, run.Text, run.Style)
		default:
			writeRun(el, run.Text, run.Style)
		}
	}

	if bookmarkID != "" {
		el.CreateElement("w:bookmarkEnd").CreateAttr("w:id", bookmarkID)
	}
	return el
}

// writeParagraphProperties emits w:pPr children in schema order.
func writeParagraphProperties(el *etree.Element, para layout.Paragraph) {
	if !hasProperties(para) {
		return
	}
	pPr := el.CreateElement("w:pPr")

	if para.PageBreakBefore {
		pPr.CreateElement("w:pageBreakBefore")
	}
	if b := para.LeftBorder; b != nil {
		left := pPr.CreateElement("w:pBdr").CreateElement("w:left")
		left.CreateAttr("w:val", "single")
		left.CreateAttr("w:sz", strconv.Itoa(b.Size))
		left.CreateAttr("w:space", strconv.Itoa(b.Space))
		left.CreateAttr("w:color", b.Color)
	}
	if para.Shading != "" {
		shading(pPr, para.Shading)
	}
	if sp := para.Spacing; sp != (layout.Spacing{}) {
		e := pPr.CreateElement("w:spacing")
		e.CreateAttr("w:before", strconv.Itoa(sp.Before))
		e.CreateAttr("w:after", strconv.Itoa(sp.After))
		if sp.Line > 0 {
			e.CreateAttr("w:line", strconv.Itoa(sp.Line))
			e.CreateAttr("w:lineRule", "auto")
		}
	}
	if in := para.Indent; in != (layout.Indent{}) {
		e := pPr.CreateElement("w:ind")
		e.CreateAttr("w:left", strconv.Itoa(in.Left))
		if in.Hanging > 0 {
			e.CreateAttr("w:hanging", strconv.Itoa(in.Hanging))
		} else if in.FirstLine > 0 {
			e.CreateAttr("w:firstLine", strconv.Itoa(in.FirstLine))
		}
	}
	if para.Align != layout.AlignLeft {
		pPr.CreateElement("w:jc").CreateAttr("w:val", alignments[para.Align])
	}
}

func hasProperties(para layout.Paragraph) bool {
	return para.PageBreakBefore ||
		para.LeftBorder != nil ||
		para.Shading != "" ||
		para.Spacing != (layout.Spacing{}) ||
		para.Indent != (layout.Indent{}) ||
		para.Align != layout.AlignLeft
}

func shading(parent *etree.Element, fill string) {
	shd := parent.CreateElement("w:shd")
	shd.CreateAttr("w:val", "clear")
	shd.CreateAttr("w:color", "auto")
	shd.CreateAttr("w:fill", fill)
}

// writeRunProperties emits a w:rPr in schema order. Nothing is written for
// a zero style.
func writeRunProperties(parent *etree.Element, st inline.Style) {
	if st == (inline.Style{}) {
		return
	}
	rPr := parent.CreateElement("w:rPr")

	if st.CharStyle != "" {
		rPr.CreateElement("w:rStyle").CreateAttr("w:val", st.CharStyle)
	}
	if st.Font != "" {
		fonts := rPr.CreateElement("w:rFonts")
		for _, a := range []string{"w:ascii", "w:hAnsi", "w:cs", "w:eastAsia"} {
			fonts.CreateAttr(a, st.Font)
		}
	}
	if st.Bold {
		rPr.CreateElement("w:b")
		rPr.CreateElement("w:bCs")
	}
	if st.Italic {
		rPr.CreateElement("w:i")
		rPr.CreateElement("w:iCs")
	}
	if st.Color != "" {
		rPr.CreateElement("w:color").CreateAttr("w:val", st.Color)
	}
	if st.Size > 0 {
		size := strconv.Itoa(st.Size)
		rPr.CreateElement("w:sz").CreateAttr("w:val", size)
		rPr.CreateElement("w:szCs").CreateAttr("w:val", size)
	}
	if st.Shading != "" {
		shading(rPr, st.Shading)
	}
}

// writeRun appends a w:r. Tabs become w:tab elements and characters XML
// cannot carry are dropped.
func writeRun(parent *etree.Element, text string, st inline.Style) {
	r := parent.CreateElement("w:r")
	writeRunProperties(r, st)

	for i, piece := range strings.Split(sanitize(text), "\t") {
		if i > 0 {
			r.CreateElement("w:tab")
		}
		if piece == "" {
			continue
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(piece)
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}

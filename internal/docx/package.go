package docx

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/alnah/go-md2kdp/internal/frontmatter"
	"github.com/alnah/go-md2kdp/internal/inline"
	"github.com/alnah/go-md2kdp/internal/layout"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDoc   = relBase + "officeDocument"
	relExtended    = relBase + "extended-properties"
	relCore        = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relStyles      = relBase + "styles"
	relSettings    = relBase + "settings"
	relHeader      = relBase + "header"
	relFooter      = relBase + "footer"
	relHyperlink   = relBase + "hyperlink"
	ctBase         = "application/vnd.openxmlformats-officedocument.wordprocessingml."
	ctMainDocument = ctBase + "document.main+xml"
)

// relationship is an entry of word/_rels/document.xml.rels.
type relationship struct {
	id       string
	typ      string
	target   string
	external bool
}

// pkg accumulates the parts of one package while it is built.
type pkg struct {
	doc   *layout.Document
	parts []part

	rels      []relationship
	overrides [][2]string // part name, content type
	links     map[string]string
	bookmarks int
}

func newPackage(doc *layout.Document) *pkg {
	return &pkg{doc: doc, links: make(map[string]string)}
}

func (p *pkg) addPart(name string, doc *etree.Document, contentType string) {
	p.parts = append(p.parts, part{name: name, doc: doc})
	if contentType != "" {
		p.overrides = append(p.overrides, [2]string{"/" + name, contentType})
	}
}

func (p *pkg) addRel(typ, target string, external bool) string {
	id := "rId" + strconv.Itoa(len(p.rels)+1)
	p.rels = append(p.rels, relationship{id: id, typ: typ, target: target, external: external})
	return id
}

// hyperlinkRel returns the relationship id for an external URL, reusing one
// per distinct target.
func (p *pkg) hyperlinkRel(url string) string {
	if id, ok := p.links[url]; ok {
		return id
	}
	id := p.addRel(relHyperlink, url, true)
	p.links[url] = id
	return id
}

func newXML() *etree.Document {
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return d
}

// build creates every part. The content types and relationship parts come
// last because the other parts register entries in them.
func (p *pkg) build(id uuid.UUID, created time.Time) {
	p.addRel(relStyles, "styles.xml", false)
	p.addRel(relSettings, "settings.xml", false)
	p.addPart("word/styles.xml", p.styles(), ctBase+"styles+xml")
	p.addPart("word/settings.xml", settings(), ctBase+"settings+xml")

	p.addPart("word/document.xml", p.document(), ctMainDocument)
	p.addPart("docProps/core.xml", p.coreProperties(id, created), "application/vnd.openxmlformats-package.core-properties+xml")
	p.addPart("docProps/app.xml", appProperties(), "application/vnd.openxmlformats-officedocument.extended-properties+xml")
	p.addPart("word/_rels/document.xml.rels", p.documentRels(), "")
	p.addPart("_rels/.rels", packageRels(), "")

	// [Content_Types].xml is conventionally the first entry.
	p.parts = append([]part{{name: "[Content_Types].xml", doc: p.contentTypes()}}, p.parts...)
}

func (p *pkg) contentTypes() *etree.Document {
	d := newXML()
	types := d.CreateElement("Types")
	types.CreateAttr("xmlns", nsCT)

	for _, def := range [][2]string{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	} {
		e := types.CreateElement("Default")
		e.CreateAttr("Extension", def[0])
		e.CreateAttr("ContentType", def[1])
	}
	for _, o := range p.overrides {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", o[0])
		e.CreateAttr("ContentType", o[1])
	}
	return d
}

func packageRels() *etree.Document {
	d := newXML()
	rels := d.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRel)

	for i, r := range [][2]string{
		{relOfficeDoc, "word/document.xml"},
		{relCore, "docProps/core.xml"},
		{relExtended, "docProps/app.xml"},
	} {
		e := rels.CreateElement("Relationship")
		e.CreateAttr("Id", "rId"+strconv.Itoa(i+1))
		e.CreateAttr("Type", r[0])
		e.CreateAttr("Target", r[1])
	}
	return d
}

func (p *pkg) documentRels() *etree.Document {
	d := newXML()
	rels := d.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRel)

	for _, r := range p.rels {
		e := rels.CreateElement("Relationship")
		e.CreateAttr("Id", r.id)
		e.CreateAttr("Type", r.typ)
		e.CreateAttr("Target", r.target)
		if r.external {
			e.CreateAttr("TargetMode", "External")
		}
	}
	return d
}

func (p *pkg) coreProperties(id uuid.UUID, created time.Time) *etree.Document {
	d := newXML()
	cp := d.CreateElement("cp:coreProperties")
	cp.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	cp.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	cp.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	cp.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	cp.CreateElement("dc:title").SetText(p.doc.Title)
	cp.CreateElement("dc:creator").SetText(p.doc.Author)
	if sub, ok := p.doc.Metadata[frontmatter.KeySubtitle]; ok && sub != "" {
		cp.CreateElement("dc:description").SetText(sub)
	}
	cp.CreateElement("dc:identifier").SetText("urn:uuid:" + id.String())

	stamp := created.UTC().Format(time.RFC3339)
	for _, name := range []string{"dcterms:created", "dcterms:modified"} {
		e := cp.CreateElement(name)
		e.CreateAttr("xsi:type", "dcterms:W3CDTF")
		e.SetText(stamp)
	}
	return d
}

func appProperties() *etree.Document {
	d := newXML()
	props := d.CreateElement("Properties")
	props.CreateAttr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	props.CreateElement("Application").SetText("md2kdp")
	return d
}

func settings() *etree.Document {
	d := newXML()
	s := d.CreateElement("w:settings")
	s.CreateAttr("xmlns:w", nsW)
	s.CreateElement("w:defaultTabStop").CreateAttr("w:val", "720")
	compat := s.CreateElement("w:compat").CreateElement("w:compatSetting")
	compat.CreateAttr("w:name", "compatibilityMode")
	compat.CreateAttr("w:uri", "http://schemas.microsoft.com/office/word")
	compat.CreateAttr("w:val", "15")
	return d
}

func (p *pkg) styles() *etree.Document {
	d := newXML()
	styles := d.CreateElement("w:styles")
	styles.CreateAttr("xmlns:w", nsW)

	base := p.doc.BaseStyle
	rPrDefault := styles.CreateElement("w:docDefaults").CreateElement("w:rPrDefault")
	writeRunProperties(rPrDefault, inline.Style{Font: base.Font, Size: base.Size})

	normal := styles.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	normal.CreateElement("w:name").CreateAttr("w:val", "Normal")
	normal.CreateElement("w:qFormat")

	link := styles.CreateElement("w:style")
	link.CreateAttr("w:type", "character")
	link.CreateAttr("w:styleId", inline.HyperlinkStyle)
	link.CreateElement("w:name").CreateAttr("w:val", inline.HyperlinkStyle)
	link.CreateElement("w:uiPriority").CreateAttr("w:val", "99")
	link.CreateElement("w:unhideWhenUsed")
	link.CreateElement("w:rPr").CreateElement("w:u").CreateAttr("w:val", "single")

	return d
}

// headerFooter builds a header or footer part holding one paragraph.
func headerFooter(root string, para *etree.Element) *etree.Document {
	d := newXML()
	e := d.CreateElement(root)
	e.CreateAttr("xmlns:w", nsW)
	e.CreateAttr("xmlns:r", nsR)
	e.AddChild(para)
	return d
}

// sectionHeader registers the header part of the section at index i.
func (p *pkg) sectionHeader(i int, s *layout.Section) string {
	para := etree.NewElement("w:p")
	if s.RunningHeader != "" {
		para.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", "right")
		writeRun(para, s.RunningHeader, p.doc.HeaderStyle)
	}
	name := fmt.Sprintf("header%d.xml", i+1)
	p.addPart("word/"+name, headerFooter("w:hdr", para), ctBase+"header+xml")
	return p.addRel(relHeader, name, false)
}

// sectionFooter registers the footer part of the section at index i.
func (p *pkg) sectionFooter(i int, s *layout.Section) string {
	para := etree.NewElement("w:p")
	if s.PageNumbers {
		para.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", "center")
		field := para.CreateElement("w:fldSimple")
		field.CreateAttr("w:instr", "PAGE")
		writeRun(field, "1", p.doc.FooterStyle)
	}
	name := fmt.Sprintf("footer%d.xml", i+1)
	p.addPart("word/"+name, headerFooter("w:ftr", para), ctBase+"footer+xml")
	return p.addRel(relFooter, name, false)
}

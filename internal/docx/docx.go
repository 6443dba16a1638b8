// Package docx serializes a layout.Document into a WordprocessingML package
// accepted by Kindle Direct Publishing and word processors.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"github.com/alnah/go-md2kdp/internal/layout"
)

// ErrInvalidDocument indicates a layout document the renderer cannot serialize.
var ErrInvalidDocument = errors.New("invalid document")

// Renderer writes .docx packages. It holds no per-document state and is safe
// for concurrent use.
type Renderer struct {
	fixZip bool
	now    func() time.Time
	newID  func() (uuid.UUID, error)
	log    *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFixZip rewrites the archive without data descriptors. Some strict
// readers reject entries whose sizes are only known after the data.
func WithFixZip(fix bool) Option {
	return func(r *Renderer) {
		r.fixZip = fix
	}
}

// WithClock sets the clock used for the creation date in document properties.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithIdentifier sets the generator of the package identifier.
func WithIdentifier(newID func() (uuid.UUID, error)) Option {
	return func(r *Renderer) {
		r.newID = newID
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		now:   time.Now,
		newID: uuid.NewV7,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes doc as a .docx package to w. Nothing is written when
// building the package fails.
func (r *Renderer) Render(w io.Writer, doc *layout.Document) error {
	if doc == nil || len(doc.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidDocument)
	}

	id, err := r.newID()
	if err != nil {
		return fmt.Errorf("generating package identifier: %w", err)
	}

	pkg := newPackage(doc)
	pkg.build(id, r.now())

	var buf bytes.Buffer
	if err := pkg.write(&buf); err != nil {
		return err
	}
	r.log.Debug("Package built",
		zap.Int("parts", len(pkg.parts)),
		zap.Int("bytes", buf.Len()),
		zap.Bool("fixZip", r.fixZip))

	if r.fixZip {
		return copyZipWithoutDataDescriptors(w, buf.Bytes())
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// part is one XML file of the package.
type part struct {
	name string
	doc  *etree.Document
}

func (p *pkg) write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, pt := range p.parts {
		if err := writeXMLToZip(zw, pt.name, pt.doc); err != nil {
			return fmt.Errorf("writing %s: %w", pt.name, err)
		}
	}
	return zw.Close()
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}

func copyZipWithoutDataDescriptors(w io.Writer, data []byte) error {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("unable to read archive: %w", err)
	}

	zw := fixzip.NewWriter(w)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		if err := zw.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy %s: %w", file.Name, err)
		}
	}
	return zw.Close()
}

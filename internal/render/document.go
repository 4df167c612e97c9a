package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-pdf/fpdf"

	"github.com/handiism/hitster-cards/internal/layout"
)

// ErrFinalized is returned when a document is used after Save.
var ErrFinalized = errors.New("document already finalized")

// Document is the drawing surface of a deck. Coordinates are in points with
// the origin at the top-left corner; text is positioned by its baseline.
type Document interface {
	AddPage()
	Line(l layout.Line)
	Text(x, y float64, font layout.Font, s string)
	Image(path string, r layout.Rect) error
	Width(s string, font layout.Font) float64

	// Save writes the document to path and closes it. It may be called once.
	Save(path string) error
}

// Metadata is stored in the document information dictionary.
type Metadata struct {
	Title   string
	Author  string
	Subject string
}

// PDF is a Document backed by github.com/go-pdf/fpdf using the core
// Helvetica fonts.
type PDF struct {
	pdf       *fpdf.Fpdf
	translate func(string) string

	mu    sync.Mutex
	saved bool
}

var _ Document = (*PDF)(nil)

// NewPDF creates an empty document with the given page size.
func NewPDF(page layout.PageSize, meta Metadata) *PDF {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("hitster-cards", true)
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	return &PDF{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// AddPage starts a new page.
func (d *PDF) AddPage() {
	d.pdf.AddPage()
}

// Line draws a straight segment.
func (d *PDF) Line(l layout.Line) {
	d.pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
}

// Text draws s with its baseline starting at (x, y).
func (d *PDF) Text(x, y float64, font layout.Font, s string) {
	d.setFont(font)
	d.pdf.Text(x, y, d.translate(s))
}

// Width measures s in font.
func (d *PDF) Width(s string, font layout.Font) float64 {
	d.setFont(font)
	return d.pdf.GetStringWidth(d.translate(s))
}

// Image places a PNG file in r.
func (d *PDF) Image(path string, r layout.Rect) error {
	d.pdf.ImageOptions(path, r.X, r.Y, r.W, r.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("place image %s: %w", path, err)
	}
	return nil
}

// PageCount returns the number of pages added so far.
func (d *PDF) PageCount() int {
	return d.pdf.PageCount()
}

// Save writes the document to path.
func (d *PDF) Save(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.saved {
		return ErrFinalized
	}
	d.saved = true
	return d.pdf.OutputFileAndClose(path)
}

func (d *PDF) setFont(font layout.Font) {
	style := ""
	if font.Bold {
		style = "B"
	}
	d.pdf.SetFont(font.Family, style, font.Size)
}

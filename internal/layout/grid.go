package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned when a grid specification cannot hold a card.
var ErrInvalidSpec = errors.New("invalid grid specification")

// PageSize is a page size in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Common page sizes.
var (
	Letter = PageSize{Width: 612, Height: 792}
	A4     = PageSize{Width: 595.28, Height: 841.89}
)

// PageSizeByName resolves "letter" or "a4".
func PageSizeByName(name string) (PageSize, error) {
	switch name {
	case "letter", "Letter", "":
		return Letter, nil
	case "a4", "A4":
		return A4, nil
	default:
		return PageSize{}, fmt.Errorf("%w: unknown page size %q", ErrInvalidSpec, name)
	}
}

// Spec describes the grid shared by code and info pages.
type Spec struct {
	Page    PageSize
	Rows    int
	Columns int
	MarginX float64
	MarginY float64

	// CodeFraction is the side of the square code image relative to
	// min(cell width, cell height).
	CodeFraction float64
}

// DefaultSpec returns a 5x3 grid on a letter page with 50pt margins.
func DefaultSpec() Spec {
	return Spec{
		Page:         Letter,
		Rows:         5,
		Columns:      3,
		MarginX:      50,
		MarginY:      50,
		CodeFraction: 0.8,
	}
}

// Validate checks that the spec leaves a positive cell area.
func (s Spec) Validate() error {
	if s.Rows < 1 || s.Columns < 1 {
		return fmt.Errorf("%w: rows and columns must be at least 1, got %dx%d", ErrInvalidSpec, s.Rows, s.Columns)
	}
	if s.MarginX < 0 || s.MarginY < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidSpec)
	}
	if s.Page.Width-2*s.MarginX <= 0 || s.Page.Height-2*s.MarginY <= 0 {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidSpec)
	}
	if s.CodeFraction <= 0 || s.CodeFraction > 1 {
		return fmt.Errorf("%w: code fraction must be in (0, 1], got %v", ErrInvalidSpec, s.CodeFraction)
	}
	return nil
}

// Grid is a validated Spec with its derived cell geometry.
type Grid struct {
	spec       Spec
	cellWidth  float64
	cellHeight float64
}

// NewGrid validates spec and computes the cell size.
func NewGrid(spec Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		spec:       spec,
		cellWidth:  (spec.Page.Width - 2*spec.MarginX) / float64(spec.Columns),
		cellHeight: (spec.Page.Height - 2*spec.MarginY) / float64(spec.Rows),
	}, nil
}

// Spec returns the grid's specification.
func (g *Grid) Spec() Spec { return g.spec }

// CellWidth returns the width of one cell.
func (g *Grid) CellWidth() float64 { return g.cellWidth }

// CellHeight returns the height of one cell.
func (g *Grid) CellHeight() float64 { return g.cellHeight }

// CardsPerPage returns Rows * Columns.
func (g *Grid) CardsPerPage() int { return g.spec.Rows * g.spec.Columns }

// PageCount returns the number of page pairs needed for n cards.
func (g *Grid) PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	per := g.CardsPerPage()
	return (n + per - 1) / per
}

// Mirror returns the info-page column paired with a code-page column.
func Mirror(column, columns int) int {
	return columns - 1 - column
}

// Position addresses one cell of one page.
type Position struct {
	Page   int
	Row    int
	Column int
}

// Placement records where a card's two faces go.
type Placement struct {
	Index int
	Code  Position
	Info  Position
}

// Place returns the placement of the card at index.
func (g *Grid) Place(index int) Placement {
	per := g.CardsPerPage()
	slot := index % per
	code := Position{
		Page:   index / per,
		Row:    slot / g.spec.Columns,
		Column: slot % g.spec.Columns,
	}
	info := code
	info.Column = Mirror(code.Column, g.spec.Columns)

	return Placement{Index: index, Code: code, Info: info}
}

// Page is one page pair of the deck.
type Page struct {
	// Index is zero-based.
	Index int
	// Total is the number of page pairs in the deck.
	Total      int
	Placements []Placement
}

// Number returns the one-based page number.
func (p Page) Number() int { return p.Index + 1 }

// Paginate assigns n cards to page pairs. Every index in [0, n) appears in
// exactly one placement.
func (g *Grid) Paginate(n int) []Page {
	total := g.PageCount(n)
	pages := make([]Page, total)
	for i := range pages {
		pages[i] = Page{Index: i, Total: total}
	}
	for i := 0; i < n; i++ {
		p := g.Place(i)
		pages[p.Code.Page].Placements = append(pages[p.Code.Page].Placements, p)
	}
	return pages
}

// Side distinguishes the two faces of a sheet.
type Side int

const (
	SideCode Side = iota
	SideInfo
)

func (s Side) String() string {
	if s == SideInfo {
		return "Info"
	}
	return "QR"
}

// Sheet is one physical page in output order.
type Sheet struct {
	Side Side
	Page Page
}

// Label is the page marker printed in the corner, e.g. "QR page 1/2".
func (s Sheet) Label() string {
	return fmt.Sprintf("%s page %d/%d", s.Side, s.Page.Number(), s.Page.Total)
}

// Sequence returns the output order: each code page immediately followed by
// its info page. The last sheet is the final info page.
func (g *Grid) Sequence(n int) []Sheet {
	pages := g.Paginate(n)
	sheets := make([]Sheet, 0, 2*len(pages))
	for _, p := range pages {
		sheets = append(sheets, Sheet{Side: SideCode, Page: p}, Sheet{Side: SideInfo, Page: p})
	}
	return sheets
}

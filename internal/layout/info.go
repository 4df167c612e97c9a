package layout

import "github.com/handiism/hitster-cards/internal/textflow"

// Font selects a typeface at a size in points.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

// Fonts used on the info face and page markers.
var (
	ArtistFont = Font{Family: "Helvetica", Bold: true, Size: 12}
	TitleFont  = Font{Family: "Helvetica", Size: 10}
	YearFont   = Font{Family: "Helvetica", Bold: true, Size: 14}
	LabelFont  = Font{Family: "Helvetica", Size: 8}
)

// Info face spacing, in points unless noted.
const (
	infoTopFraction   = 0.2 // of the cell height
	infoWidthFraction = 0.9 // of the cell width
	artistAdvance     = 20
	titleGap          = 10
)

// Measurer returns the rendered width of text in font.
type Measurer func(text string, font Font) float64

// TextLine is a line of text centered horizontally on X with its baseline at Y.
type TextLine struct {
	Text string
	Font Font
	X    float64
	Y    float64
}

// InfoText lays out artist, title and year inside the cell at pos. The
// artist sits 20% of the cell height below the cell top, the title wraps to
// 90% of the cell width below it and the year closes the block.
func (g *Grid) InfoText(pos Position, artist, title, year string, measure Measurer) []TextLine {
	cell := g.Cell(pos.Row, pos.Column)
	x := cell.CenterX()
	y := cell.Y + cell.H*infoTopFraction

	lines := []TextLine{{Text: artist, Font: ArtistFont, X: x, Y: y}}
	y += artistAdvance

	flow := textflow.Wrap(title, cell.W*infoWidthFraction, TitleFont.Size, func(s string, size float64) float64 {
		f := TitleFont
		f.Size = size
		return measure(s, f)
	}, textflow.DefaultLineHeight)

	lineY := y
	for _, l := range flow.Lines {
		lines = append(lines, TextLine{Text: l, Font: TitleFont, X: x, Y: lineY})
		lineY += textflow.LineAdvance(TitleFont.Size, textflow.DefaultLineHeight)
	}
	y += flow.Height + titleGap

	return append(lines, TextLine{Text: year, Font: YearFont, X: x, Y: y})
}

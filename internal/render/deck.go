package render

import (
	"github.com/handiism/hitster-cards/internal/layout"
	"github.com/handiism/hitster-cards/internal/model"
)

// Stats summarizes a drawn deck.
type Stats struct {
	Sheets int
	Cards  int

	// MissingCodes lists card indices whose code face was left empty.
	MissingCodes []int
}

// Draw lays out cards on doc: for every page pair a code sheet followed by
// its info sheet. codeImages maps a card index to its rendered code; cards
// without an entry get an empty code cell. Draw does not save doc.
func Draw(doc Document, grid *layout.Grid, cards []model.Card, codeImages map[int]string) (Stats, error) {
	stats := Stats{Cards: len(cards)}

	for _, sheet := range grid.Sequence(len(cards)) {
		doc.AddPage()
		drawGuides(doc, grid, sheet)
		stats.Sheets++

		for _, pl := range sheet.Page.Placements {
			card := cards[pl.Index]

			if sheet.Side == layout.SideCode {
				path, ok := codeImages[pl.Index]
				if !ok {
					stats.MissingCodes = append(stats.MissingCodes, pl.Index)
					continue
				}
				if err := doc.Image(path, grid.CodeRect(pl.Code)); err != nil {
					return stats, err
				}
				continue
			}

			for _, line := range grid.InfoText(pl.Info, card.Info.Artist, card.Info.Title, card.Info.Year, doc.Width) {
				drawCentered(doc, line)
			}
		}
	}
	return stats, nil
}

func drawGuides(doc Document, grid *layout.Grid, sheet layout.Sheet) {
	for _, l := range grid.CutGuides() {
		doc.Line(l)
	}
	for _, l := range grid.CellLines() {
		doc.Line(l)
	}

	label := sheet.Label()
	right, baseline := grid.LabelAnchor()
	doc.Text(right-doc.Width(label, layout.LabelFont), baseline, layout.LabelFont, label)
}

func drawCentered(doc Document, line layout.TextLine) {
	w := doc.Width(line.Text, line.Font)
	doc.Text(line.X-w/2, line.Y, line.Font, line.Text)
}

package layout

// GuideLength is the length of the crop marks at the page corners.
const GuideLength = 15

// TickLength is the length of the row and column ticks outside the grid.
const TickLength = 10

// Rect is an axis-aligned rectangle; X and Y are the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Cell returns the rectangle of the cell at row, column.
func (g *Grid) Cell(row, column int) Rect {
	return Rect{
		X: g.spec.MarginX + float64(column)*g.cellWidth,
		Y: g.spec.MarginY + float64(row)*g.cellHeight,
		W: g.cellWidth,
		H: g.cellHeight,
	}
}

// CodeSize returns the side of the square code image.
func (g *Grid) CodeSize() float64 {
	return g.spec.CodeFraction * min(g.cellWidth, g.cellHeight)
}

// CodeRect returns the code image rectangle centered in a cell.
func (g *Grid) CodeRect(pos Position) Rect {
	cell := g.Cell(pos.Row, pos.Column)
	size := g.CodeSize()
	return Rect{
		X: cell.X + (cell.W-size)/2,
		Y: cell.Y + (cell.H-size)/2,
		W: size,
		H: size,
	}
}

// CellLines returns the full grid of cell boundaries.
func (g *Grid) CellLines() []Line {
	s := g.spec
	left, right := s.MarginX, s.Page.Width-s.MarginX
	top, bottom := s.MarginY, s.Page.Height-s.MarginY

	lines := make([]Line, 0, s.Rows+s.Columns+2)
	for r := 0; r <= s.Rows; r++ {
		y := top + float64(r)*g.cellHeight
		lines = append(lines, Line{left, y, right, y})
	}
	for c := 0; c <= s.Columns; c++ {
		x := left + float64(c)*g.cellWidth
		lines = append(lines, Line{x, top, x, bottom})
	}
	return lines
}

// CutGuides returns the crop marks at the four corners of the grid and the
// ticks marking every row and column boundary in the margins.
func (g *Grid) CutGuides() []Line {
	s := g.spec
	w, h := s.Page.Width, s.Page.Height
	mx, my := s.MarginX, s.MarginY

	lines := []Line{
		// top-left
		{0, my, GuideLength, my},
		{mx, 0, mx, GuideLength},
		// top-right
		{w - GuideLength, my, w, my},
		{w - mx, 0, w - mx, GuideLength},
		// bottom-left
		{0, h - my, GuideLength, h - my},
		{mx, h, mx, h - GuideLength},
		// bottom-right
		{w - GuideLength, h - my, w, h - my},
		{w - mx, h, w - mx, h - GuideLength},
	}

	for r := 0; r <= s.Rows; r++ {
		y := my + float64(r)*g.cellHeight
		lines = append(lines,
			Line{mx - TickLength, y, mx, y},
			Line{w - mx, y, w - mx + TickLength, y},
		)
	}
	for c := 0; c <= s.Columns; c++ {
		x := mx + float64(c)*g.cellWidth
		lines = append(lines,
			Line{x, my - TickLength, x, my},
			Line{x, h - my, x, h - my + TickLength},
		)
	}
	return lines
}

// labelInset is the distance of the page marker from the bottom-right corner.
const labelInset = 15

// LabelAnchor returns the right end of the page marker's baseline.
func (g *Grid) LabelAnchor() (right, baseline float64) {
	return g.spec.Page.Width - labelInset, g.spec.Page.Height - labelInset
}

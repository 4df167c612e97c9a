// Package layout places cards on a fixed grid across paired pages.
//
// Every sheet of the deck is printed twice: a code page carrying the scannable
// faces and an info page carrying artist, title and year. Both pages share one
// grid of Rows x Columns cells. On the info page the column of each card is
// mirrored (Columns-1-col) while the row is kept, so that after flipping the
// sheet on its long edge both faces of a card line up back to back.
//
// # Coordinates
//
// All geometry is in PDF points with the origin at the top-left corner of the
// page and y growing downward.
//
// # Pagination
//
// Cards are assigned in order. Card i lands on page i / (Rows*Columns), row
// (i mod Rows*Columns) / Columns and column (i mod Rows*Columns) mod Columns.
// A deck of n cards occupies ceil(n / (Rows*Columns)) page pairs; the last
// pair may be partially filled.
package layout

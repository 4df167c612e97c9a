// Package render draws a laid out deck onto a paginated document.
//
// Draw walks the sheets produced by the layout grid in output order (code
// page, then its info page) and issues drawing commands to a Document. The
// PDF implementation writes through github.com/go-pdf/fpdf with the core
// Helvetica fonts; text is converted to cp1252 for them.
//
//	doc := render.NewPDF(layout.Letter, render.Metadata{Title: "Party Mix"})
//	stats, err := render.Draw(doc, grid, cards, codeImages)
//	if err == nil {
//	    err = doc.Save("Hitster_Party Mix.pdf")
//	}
//
// The last sheet is the last info page; no blank page follows it.
package render

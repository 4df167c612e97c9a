package model

// Card is the printable unit derived 1:1 from a Track.
//
// A Card is immutable once constructed. Its code face carries the identity
// token and the payload that the scannable code resolves to; its info face
// carries the human readable answer.
type Card struct {
	// Index is the card's position in playlist order (0-based).
	Index int

	// Code is the scannable side of the card.
	Code CodeFace

	// Info is the human readable side of the card.
	Info InfoFace
}

// CodeFace holds everything needed to render the scannable code.
type CodeFace struct {
	// Token is the deterministic identity token of the track reference.
	Token string

	// Payload is the encoded playback reference.
	Payload string

	// Content is the full string encoded into the scannable code.
	Content string
}

// InfoFace holds the text printed on the back of a card.
type InfoFace struct {
	Artist string
	Title  string
	Year   string
}

// NewCard freezes a track into a Card.
func NewCard(index int, track *Track, code CodeFace) Card {
	return Card{
		Index: index,
		Code:  code,
		Info: InfoFace{
			Artist: track.Artist,
			Title:  track.Title,
			Year:   track.ReleaseYear,
		},
	}
}

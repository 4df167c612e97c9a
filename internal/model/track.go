package model

// UnknownYear is the display year used when no plausible release year is known.
const UnknownYear = "Unknown"

// Track represents a single playlist entry.
//
// Track carries the metadata needed to build one card:
//   - Title (normalized) and RawTitle (as delivered by the playlist source)
//   - Artist (primary artist only) and Album
//   - ReleaseYear as a 4-digit string or UnknownYear
//   - ExternalURL, the canonical catalog reference used for playback
//
// Tracks are mutated in place by the title normalizer and the release-year
// reconciler, then frozen into Cards.
//
// Example:
//
//	track := NewTrack("Bohemian Rhapsody - Remastered 2011", "Queen", "A Night at the Opera",
//	    "1975", "https://open.spotify.com/track/4u7EnebtmKWzUH433cf5Qv", "")
//	// track.Title == track.RawTitle until the normalizer runs
type Track struct {
	// Title is the display title shown on the info face.
	Title string

	// RawTitle is the title exactly as the playlist source returned it.
	RawTitle string

	// Artist is the primary artist name.
	Artist string

	// Album is the album title.
	Album string

	// ReleaseYear is a 4-digit year or UnknownYear. Never empty.
	ReleaseYear string

	// ExternalURL is the canonical catalog reference, e.g.
	// "https://open.spotify.com/track/<id>".
	ExternalURL string

	// CoverArtURL is the URL of the album cover, if any.
	// Informational only; the card layout does not use it.
	CoverArtURL string
}

// NewTrack creates a Track. An empty release year is stored as UnknownYear.
func NewTrack(title, artist, album, releaseYear, externalURL, coverArtURL string) *Track {
	if releaseYear == "" {
		releaseYear = UnknownYear
	}
	return &Track{
		Title:       title,
		RawTitle:    title,
		Artist:      artist,
		Album:       album,
		ReleaseYear: releaseYear,
		ExternalURL: externalURL,
		CoverArtURL: coverArtURL,
	}
}

// TitleChanged reports whether normalization altered the title.
func (t *Track) TitleChanged() bool {
	return t.Title != t.RawTitle
}

// Playlist is an ordered list of tracks plus the playlist metadata.
type Playlist struct {
	// Name is the playlist name.
	Name string

	// Owner is the display name of the playlist owner.
	Owner string

	// Tracks in playlist order.
	Tracks []*Track
}

// Len returns the number of tracks in the playlist.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}

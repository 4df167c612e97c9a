package dto

import (
	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/year"
)

// JSONTrack represents a track object from the Spotify Web API.
type JSONTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	IsLocal      bool              `json:"is_local"`
	Artists      []JSONArtist      `json:"artists"`
	Album        JSONAlbum         `json:"album"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// JSONArtist is a simplified artist object.
type JSONArtist struct {
	Name string `json:"name"`
}

// JSONAlbum is a simplified album object.
type JSONAlbum struct {
	Name        string      `json:"name"`
	ReleaseDate string      `json:"release_date"`
	Images      []JSONImage `json:"images"`
}

// JSONImage is an album cover in one size. The API lists the largest first.
type JSONImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PrimaryArtist returns the first credited artist.
func (jt *JSONTrack) PrimaryArtist() string {
	if len(jt.Artists) == 0 {
		return ""
	}
	return jt.Artists[0].Name
}

// URL returns the canonical open.spotify.com link of the track.
func (jt *JSONTrack) URL() string {
	return jt.ExternalURLs["spotify"]
}

// Playable reports whether the track has a catalog link. Local files and
// removed tracks do not.
func (jt *JSONTrack) Playable() bool {
	return jt != nil && !jt.IsLocal && jt.URL() != ""
}

// ToTrack converts JSONTrack to a model.Track, reducing the album release
// date to a display year.
func (jt *JSONTrack) ToTrack(currentYear int) *model.Track {
	var cover string
	if len(jt.Album.Images) > 0 {
		cover = jt.Album.Images[0].URL
	}

	return model.NewTrack(
		jt.Name,
		jt.PrimaryArtist(),
		jt.Album.Name,
		year.FormatReleaseDate(jt.Album.ReleaseDate, currentYear),
		jt.URL(),
		cover,
	)
}

package dto

// JSONPlaylist is the subset of the playlist object used for the deck title.
type JSONPlaylist struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Owner JSONOwner `json:"owner"`
}

// JSONOwner is the public user object of the playlist owner.
type JSONOwner struct {
	DisplayName string `json:"display_name"`
}

// JSONPlaylistTracks is one page of playlist items.
type JSONPlaylistTracks struct {
	Items []JSONPlaylistItem `json:"items"`
	Next  string             `json:"next"`
	Total int                `json:"total"`
}

// JSONPlaylistItem wraps a track. Track is null for unavailable entries.
type JSONPlaylistItem struct {
	Track *JSONTrack `json:"track"`
}

// JSONSearch is the response of a track search.
type JSONSearch struct {
	Tracks struct {
		Items []JSONTrack `json:"items"`
	} `json:"tracks"`
}

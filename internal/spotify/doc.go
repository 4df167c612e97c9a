// Package spotify is the catalog integration: it reads playlists and runs
// the remaster corroboration search.
//
// Requests are authenticated with the OAuth2 client credentials flow, so only
// public playlists are reachable.
//
// # Playlists
//
//	client, err := spotify.New(ctx, spotify.Credentials{ClientID: id, ClientSecret: secret})
//	playlist, err := client.Playlist(ctx, "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
//
// Every page of the playlist is read. Entries that are unavailable or local
// files are skipped. Album release dates are reduced to a display year.
//
// # Corroboration
//
// CandidateYears implements year.Searcher. It searches for "<artist> <title>"
// and returns the release years of the top results credited to the same
// artist.
package spotify

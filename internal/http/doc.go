// Package http provides the HTTP client shared by the catalog integrations.
//
// The Client in this package handles:
//   - a fixed User-Agent header, which MusicBrainz requires
//   - query parameter encoding
//   - JSON decoding of 200 responses
//   - typed errors for every other status
//
// # Basic Usage
//
//	client := http.NewClient(http.WithUserAgent("HitsterCardGenerator/1.0"))
//
//	var page dto.Playlist
//	err := client.GetJSON(ctx, endpoint, url.Values{"limit": {"50"}}, &page)
//
// # Authenticated Clients
//
// Credentials are handled by the *http.Client passed to WithHTTPClient, for
// instance one built from golang.org/x/oauth2/clientcredentials. The wrapper
// only adds its headers on top.
package http

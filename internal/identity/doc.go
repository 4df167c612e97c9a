// Package identity derives the identity token and playback payload of a card.
//
// The token is the first 12 hex characters of the SHA-256 digest of the
// track's canonical reference. It is stable across runs and independent of
// the track's position in the playlist.
//
// The payload is the reference re-expressed as "spotify:<kind>:<id>" and
// encoded with URL-safe base64. The encoding only keeps the raw catalog link
// from being readable on the printed code; anyone can decode it.
//
//	enc := identity.NewEncoder("https://example.github.io/hitster")
//	face, err := enc.Encode("https://open.spotify.com/track/4u7EnebtmKWzUH433cf5Qv")
//	// face.Content == "https://example.github.io/hitster/index.html?id=<token>&track=<payload>"
//
// Decode reverses a scanned code back into its token and playback URI.
package identity

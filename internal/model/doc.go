// Package model defines the core data structures used throughout
// the hitster-cards application.
//
// # Track
//
// Track represents one playlist entry as delivered by a playlist source and
// later cleaned by the title normalizer and the release-year reconciler:
//
//	track := model.NewTrack(title, artist, album, "1975", trackURL, coverURL)
//	fmt.Println(track.ReleaseYear) // "1975" or model.UnknownYear
//
// # Playlist
//
// Playlist groups the ordered tracks with the playlist name and owner.
//
// # Card
//
// Card is the immutable printable unit built from a Track. Its CodeFace holds
// the identity token, payload and encoded content; its InfoFace holds the
// artist, title and year printed on the back:
//
//	card := model.NewCard(i, track, model.CodeFace{Token: token, Payload: payload, Content: url})
package model

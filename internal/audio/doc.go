// Package audio reads local playlists so that a deck can be built without
// catalog credentials.
//
// # M3U Playlists
//
// ReadM3U parses plain and extended M3U (and M3U8) files:
//
//	#EXTM3U
//	#EXTINF:354,Queen - Bohemian Rhapsody
//	music/queen/bohemian.mp3
//	#EXTINF:215,Toto - Africa
//	https://open.spotify.com/track/2374M0fQpWi3dLnB54qaLX
//
// # Tags
//
// ReadTags reads title, artist, album, year and the SPOTIFY_URL catalog link:
//   - MP3 through github.com/bogem/id3v2 (TXXX frame "SPOTIFY_URL")
//   - FLAC, Ogg and MP4 through github.com/dhowden/tag
//
// WriteReference stores the link in an MP3 file so it can be used in a local
// playlist later.
//
// # Local Source
//
// LocalSource combines both into a model.Playlist. Entries without a catalog
// link are reported through the skip callback and left out.
package audio

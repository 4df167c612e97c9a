// Package musicbrainz implements the external year lookup against the
// MusicBrainz recording search.
//
// The service allows about one request per second per client, so the Client
// sleeps for a fixed delay after every request. It is meant to be used
// sequentially with a bounded number of calls.
//
//	mb := musicbrainz.New(musicbrainz.WithUserAgent("HitsterCardGenerator/1.0 ( me@example.com )"))
//	y, found, err := mb.EarliestYear(ctx, "Queen", "Bohemian Rhapsody (Remastered 2011)")
package musicbrainz

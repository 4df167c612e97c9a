// Package generate orchestrates turning a playlist into a printable card
// deck.
//
// # Manager
//
// The Manager runs the pipeline in stages:
//
//  1. Fetch the playlist from a Source
//  2. Normalize track titles
//  3. Corroborate years of remastered tracks (optional Searcher)
//  4. Verify suspicious years (optional Lookup, bounded budget)
//  5. Apply overrides and review years outside a range
//  6. Encode each track into a code face and write code images
//  7. Lay out and save the double-sided deck
//
// # Basic Usage
//
//	manager, err := generate.NewManager(opts, generate.Dependencies{
//	    Source: spotifyClient,
//	    Lookup: musicbrainzClient,
//	    Codes:  qr.NewRenderer(qrcode.Low, 600),
//	}, func(event generate.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := manager.Run(ctx, "https://open.spotify.com/playlist/...")
//
// Interactive front ends call Load, Verify, ApplyVerified, ApplyOverrides,
// Review and Render one at a time instead of Run.
//
// # Failures
//
// Per-track failures (lookups, malformed references, code images) are
// reported as LevelWarning events and never stop the run. A failed render
// is retried once with temporary files kept for inspection. Two runs cannot
// write the same output file at once; the second gets ErrOutputLocked.
package generate

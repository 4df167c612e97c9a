package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/handiism/hitster-cards/internal/audio"
	"github.com/handiism/hitster-cards/internal/config"
	"github.com/handiism/hitster-cards/internal/musicbrainz"
	"github.com/handiism/hitster-cards/internal/qr"
	"github.com/handiism/hitster-cards/internal/spotify"
)

// SourceKind selects where playlists are read from.
type SourceKind int

const (
	// SourceSpotify reads playlists from the Spotify Web API.
	SourceSpotify SourceKind = iota

	// SourceLocal reads .m3u/.m3u8 playlists of tagged audio files.
	SourceLocal
)

// OptionsFromSettings converts settings to pipeline options.
func OptionsFromSettings(s *config.Settings, now time.Time) (Options, error) {
	spec, err := s.ToGridSpec()
	if err != nil {
		return Options{}, err
	}
	return Options{
		PlayerURL:     s.Player.URL,
		Grid:          spec,
		Reconcile:     s.ToReconcileOptions(now),
		Verify:        s.Verification.Enabled,
		ApplyVerified: s.Verification.ApplyVerified,
		YearRange:     s.ToYearRange(),
		OutputPath:    s.Output.Path,
		TempDir:       s.Output.TempDir,
		KeepTempFiles: s.Output.KeepTempFiles,
	}, nil
}

// NewFromSettings wires a Manager with the real collaborators described by
// settings. opts is usually built with OptionsFromSettings and then adjusted
// by the caller. ctx must outlive the Manager; it is used to refresh Spotify
// tokens.
//
// The Spotify search used to corroborate remastered tracks is only wired
// when credentials are configured.
func NewFromSettings(ctx context.Context, s *config.Settings, opts Options, kind SourceKind, logger *slog.Logger, onProgress func(ProgressEvent)) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var catalog *spotify.Client
	if s.Spotify.ClientID != "" && s.Spotify.ClientSecret != "" {
		c, err := spotify.New(ctx, spotify.Credentials{
			ClientID:     s.Spotify.ClientID,
			ClientSecret: s.Spotify.ClientSecret,
			TokenURL:     s.Spotify.TokenURL,
		}, spotify.WithBaseURL(s.Spotify.APIURL))
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	deps := Dependencies{
		Lookup: musicbrainz.New(
			musicbrainz.WithBaseURL(s.MusicBrainz.BaseURL),
			musicbrainz.WithUserAgent(s.MusicBrainz.UserAgent),
			musicbrainz.WithDelay(s.LookupDelay()),
		),
		Logger: logger,
	}
	if catalog != nil {
		deps.Searcher = catalog
	}

	switch kind {
	case SourceLocal:
		deps.Source = audio.NewLocalSource(func(location string, err error) {
			logger.Warn("skipping playlist entry", slog.String("location", location), slog.Any("error", err))
			if onProgress != nil {
				onProgress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", location, err), Level: LevelWarning})
			}
		})
	default:
		if catalog == nil {
			return nil, fmt.Errorf("spotify credentials required (set %s and %s)", config.EnvClientID, config.EnvClientSecret)
		}
		deps.Source = catalog
	}

	level, err := qr.ParseLevel(s.Layout.QRLevel)
	if err != nil {
		return nil, err
	}
	deps.Codes = qr.NewRenderer(level, s.Layout.QRPixels)

	return NewManager(opts, deps, onProgress)
}

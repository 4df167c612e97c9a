package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/hitster-cards/internal/musicbrainz"
	"github.com/handiism/hitster-cards/internal/spotify"
)

const (
	defaultMaxLookups = 25
	defaultYearMin    = 1950
)

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Spotify: Spotify{
			APIURL:   spotify.DefaultAPIURL,
			TokenURL: spotify.DefaultTokenURL,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:   musicbrainz.DefaultBaseURL,
			UserAgent: musicbrainz.DefaultUserAgent,
			DelayMS:   int(musicbrainz.DefaultDelay.Milliseconds()),
		},
		Verification: Verification{
			MaxLookups: defaultMaxLookups,
		},
		YearRange: YearRange{
			Min: defaultYearMin,
			Max: time.Now().Year(),
		},
		Layout: Layout{
			PageSize:     "letter",
			Rows:         5,
			Columns:      3,
			MarginX:      50,
			MarginY:      50,
			CodeFraction: 0.8,
			QRLevel:      "low",
			QRPixels:     600,
		},
		Output: Output{
			TempDir: filepath.Join(os.TempDir(), "hitster-cards"),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

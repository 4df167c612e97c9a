package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/hitster-cards/internal/layout"
	"github.com/handiism/hitster-cards/internal/year"
)

// Spotify holds catalog credentials and endpoints.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	APIURL       string `toml:"api_url"`
	TokenURL     string `toml:"token_url"`
}

// MusicBrainz configures the external year lookup.
type MusicBrainz struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
	DelayMS   int    `toml:"delay_ms"`
}

// Player is the web player the printed codes point to.
type Player struct {
	URL string `toml:"url"`
}

// Verification configures the lookup of suspicious release years.
type Verification struct {
	Enabled       bool `toml:"enabled"`
	MaxLookups    int  `toml:"max_lookups"`
	ApplyVerified bool `toml:"apply_verified"`
}

// YearRange configures the review of implausible years.
type YearRange struct {
	Enabled bool `toml:"enabled"`
	Min     int  `toml:"min"`
	Max     int  `toml:"max"`
}

// Layout configures the printed grid.
type Layout struct {
	PageSize     string  `toml:"page_size"` // letter, a4
	Rows         int     `toml:"rows"`
	Columns      int     `toml:"columns"`
	MarginX      float64 `toml:"margin_x"`
	MarginY      float64 `toml:"margin_y"`
	CodeFraction float64 `toml:"code_fraction"`
	QRLevel      string  `toml:"qr_level"` // low, medium, high, highest
	QRPixels     int     `toml:"qr_pixels"`
}

// Output configures where the deck and its temporary files go.
type Output struct {
	Path          string `toml:"path"`
	KeepTempFiles bool   `toml:"keep_temp_files"`
	TempDir       string `toml:"temp_dir"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Settings holds all configuration options.
type Settings struct {
	Spotify      Spotify      `toml:"spotify"`
	MusicBrainz  MusicBrainz  `toml:"musicbrainz"`
	Player       Player       `toml:"player"`
	Verification Verification `toml:"verification"`
	YearRange    YearRange    `toml:"year_range"`
	Layout       Layout       `toml:"layout"`
	Output       Output       `toml:"output"`
	Logging      Logging      `toml:"logging"`
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() (string, error) {
	return ExpandPath("~/.config/hitster-cards/config.toml")
}

// Load reads settings from a TOML file. A missing file yields the defaults.
// The result is normalized and validated.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := settings.Normalize(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	// The file may hold the client secret.
	return os.WriteFile(path, data, 0o600)
}

// ToGridSpec converts the layout settings to a grid specification.
func (s *Settings) ToGridSpec() (layout.Spec, error) {
	page, err := layout.PageSizeByName(s.Layout.PageSize)
	if err != nil {
		return layout.Spec{}, err
	}
	return layout.Spec{
		Page:         page,
		Rows:         s.Layout.Rows,
		Columns:      s.Layout.Columns,
		MarginX:      s.Layout.MarginX,
		MarginY:      s.Layout.MarginY,
		CodeFraction: s.Layout.CodeFraction,
	}, nil
}

// ToReconcileOptions converts the verification settings to reconciler
// options, judging plausibility against now.
func (s *Settings) ToReconcileOptions(now time.Time) year.Options {
	return year.Options{
		MaxLookups:  s.Verification.MaxLookups,
		Rules:       year.DefaultRules(),
		CurrentYear: now.Year(),
	}
}

// ToYearRange returns the review range, or nil when review is disabled.
func (s *Settings) ToYearRange() *year.Range {
	if !s.YearRange.Enabled {
		return nil
	}
	return &year.Range{Min: s.YearRange.Min, Max: s.YearRange.Max}
}

// LookupDelay returns the pause after each MusicBrainz request.
func (s *Settings) LookupDelay() time.Duration {
	return time.Duration(s.MusicBrainz.DelayMS) * time.Millisecond
}

// Redacted returns a copy of s with the client secret masked, for display.
func (s *Settings) Redacted() *Settings {
	c := *s
	if c.Spotify.ClientSecret != "" {
		c.Spotify.ClientSecret = "********"
	}
	return &c
}

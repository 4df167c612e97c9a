package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/handiism/hitster-cards/internal/layout"
	"github.com/handiism/hitster-cards/internal/qr"
	"github.com/handiism/hitster-cards/internal/year"
)

// Validate ensures the settings are usable. Catalog credentials are checked
// when a client is created, since local playlists do not need them.
func (s *Settings) Validate() error {
	if err := s.validatePlayer(); err != nil {
		return err
	}
	if s.Verification.MaxLookups < 0 {
		return errors.New("verification.max_lookups must not be negative")
	}
	if s.MusicBrainz.DelayMS < 0 {
		return errors.New("musicbrainz.delay_ms must not be negative")
	}
	if s.YearRange.Enabled {
		r := year.Range{Min: s.YearRange.Min, Max: s.YearRange.Max}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("year_range: %w", err)
		}
	}
	if err := s.validateLayout(); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", s.Logging.Format)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", s.Logging.Level)
	}
	return nil
}

func (s *Settings) validatePlayer() error {
	if s.Player.URL == "" {
		path, err := DefaultPath()
		if err != nil {
			path = "~/.config/hitster-cards/config.toml"
		}
		return fmt.Errorf("player.url is required. Set %s or edit %s (create with 'hitster-cards config init')", EnvPlayerURL, path)
	}
	u, err := url.Parse(s.Player.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("player.url must be an http(s) URL, got %q", s.Player.URL)
	}
	return nil
}

func (s *Settings) validateLayout() error {
	spec, err := s.ToGridSpec()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if _, err := layout.NewGrid(spec); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if _, err := qr.ParseLevel(s.Layout.QRLevel); err != nil {
		return fmt.Errorf("layout.qr_level: %w", err)
	}
	if s.Layout.QRPixels < 0 {
		return errors.New("layout.qr_pixels must not be negative")
	}
	return nil
}

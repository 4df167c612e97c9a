package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted when the file leaves a value empty.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvPlayerURL    = "HITSTER_PLAYER_URL"
)

// Normalize fills empty values from the environment and defaults, and
// expands paths.
func (s *Settings) Normalize() error {
	defaults := DefaultSettings()

	s.Spotify.ClientID = envFallback(s.Spotify.ClientID, EnvClientID)
	s.Spotify.ClientSecret = envFallback(s.Spotify.ClientSecret, EnvClientSecret)
	s.Spotify.APIURL = orDefault(s.Spotify.APIURL, defaults.Spotify.APIURL)
	s.Spotify.TokenURL = orDefault(s.Spotify.TokenURL, defaults.Spotify.TokenURL)

	s.MusicBrainz.BaseURL = orDefault(s.MusicBrainz.BaseURL, defaults.MusicBrainz.BaseURL)
	s.MusicBrainz.UserAgent = orDefault(s.MusicBrainz.UserAgent, defaults.MusicBrainz.UserAgent)

	s.Player.URL = strings.TrimRight(envFallback(s.Player.URL, EnvPlayerURL), "/")

	s.Layout.PageSize = strings.ToLower(orDefault(s.Layout.PageSize, defaults.Layout.PageSize))
	s.Layout.QRLevel = strings.ToLower(orDefault(s.Layout.QRLevel, defaults.Layout.QRLevel))
	s.Logging.Level = strings.ToLower(orDefault(s.Logging.Level, defaults.Logging.Level))
	s.Logging.Format = strings.ToLower(orDefault(s.Logging.Format, defaults.Logging.Format))

	var err error
	if s.Output.Path, err = ExpandPath(s.Output.Path); err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	s.Output.TempDir = orDefault(s.Output.TempDir, defaults.Output.TempDir)
	if s.Output.TempDir, err = ExpandPath(s.Output.TempDir); err != nil {
		return fmt.Errorf("output.temp_dir: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ and makes the path absolute. Empty paths
// stay empty.
func ExpandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

func envFallback(value, key string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(env)
	}
	return ""
}

func orDefault(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}

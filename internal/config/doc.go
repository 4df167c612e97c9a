// Package config loads and saves the application settings.
//
// Settings are stored as TOML, by default in
// ~/.config/hitster-cards/config.toml:
//
//	[spotify]
//	client_id = ""
//	client_secret = ""
//
//	[player]
//	url = "https://example.github.io/hitster"
//
//	[verification]
//	enabled = true
//	max_lookups = 25
//
//	[layout]
//	page_size = "letter"
//	rows = 5
//	columns = 3
//
// # Environment
//
// Empty credentials fall back to SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET,
// and an empty player URL to HITSTER_PLAYER_URL. The commands load a .env
// file before reading settings, so these can live next to the playlist.
//
// # Conversion
//
// The core packages never see Settings. Use ToGridSpec, ToReconcileOptions
// and ToYearRange to derive their configuration.
package config

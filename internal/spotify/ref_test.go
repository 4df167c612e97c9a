package spotify

import (
	"errors"
	"testing"
)

func TestParsePlaylistID(t *testing.T) {
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"https://open.spotify.com/intl-de/playlist/37i9dQZF1DXcBWIGoYBM5M/", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"spotify:user:someone:playlist:abc", "abc", false},
		{"  37i9dQZF1DXcBWIGoYBM5M  ", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"", "", true},
		{"spotify:track:abc", "", true},
		{"https://open.spotify.com/track/abc", "", true},
		{"https://open.spotify.com/", "", true},
		{"not a playlist", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParsePlaylistID(tt.ref)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlaylistReference) {
					t.Errorf("error = %v, want ErrInvalidPlaylistReference", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

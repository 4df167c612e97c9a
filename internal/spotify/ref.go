package spotify

import (
	"fmt"
	"net/url"
	"strings"
)

// ParsePlaylistID extracts the playlist id from an open.spotify.com link,
// a spotify:playlist:<id> URI or a bare id.
func ParsePlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPlaylistReference)
	}

	if rest, ok := strings.CutPrefix(ref, "spotify:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) < 2 || parts[len(parts)-2] != "playlist" {
			return "", fmt.Errorf("%w: %q", ErrInvalidPlaylistReference, ref)
		}
		return validID(parts[len(parts)-1], ref)
	}

	if !strings.Contains(ref, "/") {
		return validID(ref, ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPlaylistReference, err)
	}
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] == "playlist" {
			return validID(segments[i+1], ref)
		}
	}
	return "", fmt.Errorf("%w: no playlist id in %q", ErrInvalidPlaylistReference, ref)
}

func validID(id, ref string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlaylistReference, ref)
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", fmt.Errorf("%w: %q", ErrInvalidPlaylistReference, ref)
		}
	}
	return id, nil
}

package year

import (
	"strings"

	"golang.org/x/text/cases"
)

// Rules configures the suspicion heuristic.
type Rules struct {
	// RecentAfter flags any year strictly after this one.
	RecentAfter int

	// ClassicAfter flags years strictly after this one for classic artists.
	ClassicAfter int

	// ClassicArtists are matched as case-insensitive substrings of the artist name.
	ClassicArtists []string
}

// DefaultRules returns the built-in heuristic.
func DefaultRules() Rules {
	return Rules{
		RecentAfter:  2020,
		ClassicAfter: 2010,
		ClassicArtists: []string{
			"queen", "led zeppelin", "pink floyd", "the beatles", "rolling stones",
			"acdc", "ac/dc", "black sabbath", "deep purple", "bob dylan", "david bowie",
			"the who", "jimi hendrix", "the doors", "eagles", "fleetwood mac",
		},
	}
}

// IsSuspicious reports whether a nominal year warrants external verification.
func (r Rules) IsSuspicious(nominal, artist string) bool {
	y, ok := parseYear(nominal)
	if !ok {
		return true
	}
	if y > r.RecentAfter {
		return true
	}
	return y > r.ClassicAfter && r.IsClassicArtist(artist)
}

// IsClassicArtist reports whether artist contains any of the classic names.
func (r Rules) IsClassicArtist(artist string) bool {
	fold := cases.Fold()
	folded := fold.String(artist)
	for _, name := range r.ClassicArtists {
		if name == "" {
			continue
		}
		if strings.Contains(folded, fold.String(name)) {
			return true
		}
	}
	return false
}

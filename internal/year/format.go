package year

import (
	"strconv"
	"strings"

	"github.com/handiism/hitster-cards/internal/model"
)

// MinPlausible is the earliest year accepted as a release year.
const MinPlausible = 1900

// FormatReleaseDate reduces a catalog release date ("2011", "2011-09",
// "2011-09-26") to its 4-digit year. Dates that are empty, malformed, or
// outside [MinPlausible, currentYear] become model.UnknownYear.
func FormatReleaseDate(releaseDate string, currentYear int) string {
	releaseDate = strings.TrimSpace(releaseDate)
	if len(releaseDate) < 4 {
		return model.UnknownYear
	}

	y, ok := parseYear(releaseDate[:4])
	if !ok || !Plausible(y, currentYear) {
		return model.UnknownYear
	}
	return releaseDate[:4]
}

// Plausible reports whether y is within [MinPlausible, currentYear].
func Plausible(y, currentYear int) bool {
	return y >= MinPlausible && y <= currentYear
}

// parseYear parses a string made only of ASCII digits.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

package generate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOverride is returned for override text that is not "N=YEAR".
var ErrInvalidOverride = errors.New("invalid override")

// ParseOverride parses an operator override of the form "N=YEAR" or
// "N YEAR", where N is the 1-based track number shown to the operator.
// The returned index is 0-based.
func ParseOverride(s string) (int, string, error) {
	s = strings.TrimSpace(s)
	num, yr, ok := strings.Cut(s, "=")
	if !ok {
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return 0, "", fmt.Errorf("%w: %q (want N=YEAR)", ErrInvalidOverride, s)
		}
		num, yr = fields[0], fields[1]
	}

	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 1 {
		return 0, "", fmt.Errorf("%w: track number %q", ErrInvalidOverride, num)
	}
	yr = strings.TrimSpace(yr)
	if yr == "" {
		return 0, "", fmt.Errorf("%w: empty year for track %d", ErrInvalidOverride, n)
	}
	return n - 1, yr, nil
}

// ParseOverrides parses a list of overrides. Later entries win.
func ParseOverrides(list []string) (map[int]string, error) {
	out := make(map[int]string, len(list))
	for _, s := range list {
		idx, yr, err := ParseOverride(s)
		if err != nil {
			return nil, err
		}
		out[idx] = yr
	}
	return out, nil
}

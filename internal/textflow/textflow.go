// Package textflow breaks text into centered lines that fit a width budget.
package textflow

import "strings"

// DefaultLineHeight is the line pitch as a multiple of the font size.
const DefaultLineHeight = 1.2

// MeasureFunc returns the rendered width of text at the given font size.
type MeasureFunc func(text string, size float64) float64

// Flow is the result of wrapping a string.
type Flow struct {
	// Lines in top to bottom order.
	Lines []string

	// Height is len(Lines) * size * lineHeight.
	Height float64
}

// Wrap greedily fills lines word by word while the measured width of the
// candidate line stays within maxWidth. A word that alone exceeds maxWidth is
// placed on its own line; words are never hyphenated or truncated. A
// non-positive lineHeight uses DefaultLineHeight.
func Wrap(text string, maxWidth, size float64, measure MeasureFunc, lineHeight float64) Flow {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if measure(candidate, size) <= maxWidth || current == "" {
			current = candidate
			continue
		}

		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	return Flow{
		Lines:  lines,
		Height: float64(len(lines)) * size * lineHeight,
	}
}

// LineAdvance returns the vertical distance between consecutive baselines.
func LineAdvance(size, lineHeight float64) float64 {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	return size * lineHeight
}

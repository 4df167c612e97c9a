package year

import (
	"errors"
	"fmt"

	"github.com/handiism/hitster-cards/internal/model"
)

// Range bounds accepted for the operator review range.
const (
	RangeFloor   = 1900
	RangeCeiling = 2100
)

// Reason explains why a track was flagged for review.
type Reason int

const (
	ReasonBelowMin Reason = iota
	ReasonAboveMax
	ReasonInvalid
)

func (r Reason) String() string {
	switch r {
	case ReasonBelowMin:
		return "below minimum"
	case ReasonAboveMax:
		return "above maximum"
	default:
		return "not a valid year"
	}
}

// Range is an inclusive year interval.
type Range struct {
	Min int
	Max int
}

// Validate checks that the range is within [RangeFloor, RangeCeiling] and ordered.
func (r Range) Validate() error {
	if r.Min < RangeFloor || r.Min > RangeCeiling {
		return fmt.Errorf("minimum year %d must be between %d and %d", r.Min, RangeFloor, RangeCeiling)
	}
	if r.Max < r.Min || r.Max > RangeCeiling {
		return fmt.Errorf("maximum year %d must be between %d and %d", r.Max, r.Min, RangeCeiling)
	}
	return nil
}

// ReviewItem is a track whose year needs operator attention.
type ReviewItem struct {
	Index  int
	Artist string
	Title  string
	Year   string
	Reason Reason
}

// Describe renders the reason the way it is shown to the operator.
func (it ReviewItem) Describe(r Range) string {
	switch it.Reason {
	case ReasonBelowMin:
		return fmt.Sprintf("%s (below minimum %d)", it.Year, r.Min)
	case ReasonAboveMax:
		return fmt.Sprintf("%s (above maximum %d)", it.Year, r.Max)
	default:
		return fmt.Sprintf("%s (not a valid year)", it.Year)
	}
}

// ErrInvalidRange is returned by Review for ranges that fail validation.
var ErrInvalidRange = errors.New("invalid year range")

// Review lists tracks whose year is outside r or not a number.
func Review(tracks []*model.Track, r Range) ([]ReviewItem, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	var items []ReviewItem
	for i, track := range tracks {
		item := ReviewItem{Index: i, Artist: track.Artist, Title: track.Title, Year: track.ReleaseYear}
		y, ok := parseYear(track.ReleaseYear)
		switch {
		case !ok:
			item.Reason = ReasonInvalid
		case y < r.Min:
			item.Reason = ReasonBelowMin
		case y > r.Max:
			item.Reason = ReasonAboveMax
		default:
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

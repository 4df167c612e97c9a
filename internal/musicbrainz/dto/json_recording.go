// Package dto contains the MusicBrainz recording search response shapes.
package dto

import (
	"sort"
	"strconv"
	"strings"
)

// JSONRecordingSearch is the response of /ws/2/recording?query=...&fmt=json.
type JSONRecordingSearch struct {
	Count      int             `json:"count"`
	Recordings []JSONRecording `json:"recordings"`
}

// JSONRecording is one scored search hit.
type JSONRecording struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Score    int           `json:"score"`
	Releases []JSONRelease `json:"releases"`
}

// JSONRelease is a release containing the recording.
type JSONRelease struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// EarliestYear returns the earliest year among the recording's dated
// releases. Dates may be "YYYY", "YYYY-MM" or "YYYY-MM-DD".
func (r *JSONRecording) EarliestYear() (int, bool) {
	earliest := 0
	for _, rel := range r.Releases {
		head, _, _ := strings.Cut(rel.Date, "-")
		y, err := strconv.Atoi(head)
		if err != nil || y <= 0 {
			continue
		}
		if earliest == 0 || y < earliest {
			earliest = y
		}
	}
	return earliest, earliest != 0
}

// EarliestYear walks the recordings from best to worst score and returns the
// earliest release year of the first one that has any dated release.
func (s *JSONRecordingSearch) EarliestYear() (int, bool) {
	recs := make([]JSONRecording, len(s.Recordings))
	copy(recs, s.Recordings)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })

	for i := range recs {
		if y, ok := recs[i].EarliestYear(); ok {
			return y, true
		}
	}
	return 0, false
}

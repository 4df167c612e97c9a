package year

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/handiism/hitster-cards/internal/model"
)

type fakeLookup struct {
	years map[string]int
	errs  map[string]error
	calls []string
}

func (f *fakeLookup) EarliestYear(_ context.Context, artist, title string) (int, bool, error) {
	f.calls = append(f.calls, artist+"/"+title)
	if err, ok := f.errs[title]; ok {
		return 0, false, err
	}
	y, ok := f.years[title]
	return y, ok, nil
}

type fakeSearcher struct {
	years   map[string][]int
	err     error
	queries []string
}

func (f *fakeSearcher) CandidateYears(_ context.Context, artist, title string) ([]int, error) {
	f.queries = append(f.queries, artist+" "+title)
	if f.err != nil {
		return nil, f.err
	}
	return f.years[title], nil
}

func newTracks(entries ...[3]string) []*model.Track {
	tracks := make([]*model.Track, len(entries))
	for i, e := range entries {
		tracks[i] = model.NewTrack(e[1], e[0], "Album", e[2], "https://open.spotify.com/track/x", "")
	}
	return tracks
}

func TestFormatReleaseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1975-10-31", "1975"},
		{"1975-10", "1975"},
		{"1975", "1975"},
		{"", model.UnknownYear},
		{"75", model.UnknownYear},
		{"abcd-01-01", model.UnknownYear},
		{"1899", model.UnknownYear},
		{"2031-01-01", model.UnknownYear},
		{"2026", "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatReleaseDate(tt.input, 2026); got != tt.want {
				t.Errorf("FormatReleaseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRules_IsSuspicious(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		year   string
		artist string
		want   bool
	}{
		{"2015", "Queen", true},
		{"1975", "Queen", false},
		{"2011", "QUEEN", true},
		{"2010", "Queen", false},
		{"2015", "Queens of the Stone Age", true},
		{"2015", "Adele", false},
		{"2021", "Adele", true},
		{"2020", "Adele", false},
		{"Unknown", "Adele", true},
		{"", "Adele", true},
		{"2012", "Fleetwood Mac", true},
		{"2012", "AC/DC", true},
	}

	for _, tt := range tests {
		t.Run(tt.artist+"/"+tt.year, func(t *testing.T) {
			if got := rules.IsSuspicious(tt.year, tt.artist); got != tt.want {
				t.Errorf("IsSuspicious(%q, %q) = %v, want %v", tt.year, tt.artist, got, tt.want)
			}
		})
	}
}

func TestVerify_OnlySuspiciousUseBudget(t *testing.T) {
	tracks := newTracks(
		[3]string{"Queen", "Bohemian Rhapsody", "1975"},
		[3]string{"Queen", "Under Pressure", "2011"},
		[3]string{"Adele", "Hello", "2015"},
		[3]string{"Unknown Band", "Mystery", model.UnknownYear},
	)
	lookup := &fakeLookup{years: map[string]int{"Under Pressure": 1981, "Mystery": 1999}}

	r := NewReconciler(Options{MaxLookups: 10, Rules: DefaultRules(), CurrentYear: 2026})
	report := r.Verify(context.Background(), tracks, lookup, nil)

	wantCalls := []string{"Queen/Under Pressure", "Unknown Band/Mystery"}
	if !reflect.DeepEqual(lookup.calls, wantCalls) {
		t.Errorf("lookup calls = %v, want %v", lookup.calls, wantCalls)
	}
	wantChanges := map[int]string{1: "1981", 3: "1999"}
	if !reflect.DeepEqual(report.Changes, wantChanges) {
		t.Errorf("Changes = %v, want %v", report.Changes, wantChanges)
	}
	if report.BudgetExhausted() {
		t.Error("budget should not be exhausted")
	}
	if tracks[1].ReleaseYear != "2011" {
		t.Error("Verify must not modify tracks")
	}
}

func TestVerify_BudgetIsSoftLimit(t *testing.T) {
	tracks := newTracks(
		[3]string{"A", "One", "2022"},
		[3]string{"B", "Two", "2023"},
		[3]string{"C", "Three", "1980"},
		[3]string{"D", "Four", "2024"},
	)
	lookup := &fakeLookup{years: map[string]int{"One": 1990, "Two": 1991, "Four": 1992}}

	r := NewReconciler(Options{MaxLookups: 1, Rules: DefaultRules(), CurrentYear: 2026})
	report := r.Verify(context.Background(), tracks, lookup, nil)

	if len(lookup.calls) != 1 {
		t.Fatalf("lookup called %d times, want 1", len(lookup.calls))
	}
	if !reflect.DeepEqual(report.Skipped, []int{1, 3}) {
		t.Errorf("Skipped = %v, want [1 3]", report.Skipped)
	}
	if !report.BudgetExhausted() {
		t.Error("BudgetExhausted() should be true")
	}

	r.SetMaxLookups(0)
	lookup.calls = nil
	report = r.Verify(context.Background(), tracks, lookup, nil)
	if len(lookup.calls) != 0 || len(report.Skipped) != 3 {
		t.Errorf("zero budget: calls=%d skipped=%v", len(lookup.calls), report.Skipped)
	}
}

func TestVerify_Outcomes(t *testing.T) {
	tracks := newTracks(
		[3]string{"A", "Fails", "2022"},
		[3]string{"A", "Missing", "2022"},
		[3]string{"A", "Same", "2022"},
		[3]string{"A", "Ancient", "2022"},
	)
	lookup := &fakeLookup{
		years: map[string]int{"Same": 2022, "Ancient": 1066},
		errs:  map[string]error{"Fails": errors.New("boom")},
	}

	var seen []Outcome
	r := NewReconciler(Options{MaxLookups: 10, Rules: DefaultRules(), CurrentYear: 2026})
	report := r.Verify(context.Background(), tracks, lookup, func(c Check) { seen = append(seen, c.Outcome) })

	want := []Outcome{OutcomeFailed, OutcomeNotFound, OutcomeConfirmed, OutcomeImplausible}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("outcomes = %v, want %v", seen, want)
	}
	if len(report.Changes) != 0 {
		t.Errorf("Changes = %v, want none", report.Changes)
	}
}

func TestApplyVerifiedAndOverrides(t *testing.T) {
	tracks := newTracks(
		[3]string{"Queen", "Under Pressure", "2011"},
		[3]string{"Adele", "Hello", "2015"},
	)

	changes := ApplyVerified(tracks, map[int]string{0: "1981", 7: "2000"})
	if len(changes) != 1 || changes[0].Source != SourceVerified || tracks[0].ReleaseYear != "1981" {
		t.Fatalf("ApplyVerified changes = %+v, year = %q", changes, tracks[0].ReleaseYear)
	}

	// Overrides win over verified values, and blank overrides keep the current year.
	changes, err := ApplyOverrides(tracks, map[int]string{0: "1982", 1: "  "})
	if err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if len(changes) != 1 || changes[0].From != "1981" || changes[0].To != "1982" {
		t.Errorf("override changes = %+v", changes)
	}
	if tracks[1].ReleaseYear != "2015" {
		t.Errorf("blank override changed year to %q", tracks[1].ReleaseYear)
	}

	if _, err := ApplyOverrides(tracks, map[int]string{2: "1999"}); err == nil {
		t.Error("expected error for out of range override")
	}

	change, ok, err := ApplyOverride(tracks, 1, "2016")
	if err != nil || !ok || change.To != "2016" {
		t.Errorf("ApplyOverride = %+v, %v, %v", change, ok, err)
	}
}

func TestPreferEarliest(t *testing.T) {
	tests := []struct {
		name       string
		nominal    string
		candidates []int
		want       string
		changed    bool
	}{
		{"earlier wins", "2011", []int{2011, 1975, 1980}, "1975", true},
		{"equal keeps", "1975", []int{1975, 2011}, "1975", false},
		{"later ignored", "1975", []int{2011}, "1975", false},
		{"no candidates", "2011", nil, "2011", false},
		{"implausible ignored", "2011", []int{1066}, "2011", false},
		{"unknown nominal kept", model.UnknownYear, []int{1975}, model.UnknownYear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := PreferEarliest(tt.nominal, tt.candidates, 2026)
			if got != tt.want || changed != tt.changed {
				t.Errorf("PreferEarliest() = %q, %v, want %q, %v", got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestCorroborate(t *testing.T) {
	tracks := newTracks(
		[3]string{"Queen", "Bohemian Rhapsody - Remastered 2011", "2011"},
		[3]string{"Queen", "Love of My Life", "2011"},
		[3]string{"Eagles", "Hotel California (Deluxe Edition)", "2013"},
	)
	searcher := &fakeSearcher{years: map[string][]int{
		"Bohemian Rhapsody - Remastered 2011": {2011, 1975},
		"Hotel California":                    {2013},
	}}

	r := NewReconciler(Options{Rules: DefaultRules(), CurrentYear: 2026})
	changes := r.Corroborate(context.Background(), tracks, searcher, nil)

	if len(searcher.queries) != 2 {
		t.Fatalf("queries = %v, want 2 searches", searcher.queries)
	}
	if searcher.queries[1] != "Eagles Hotel California" {
		t.Errorf("search title = %q, want cut at parenthesis", searcher.queries[1])
	}
	if len(changes) != 1 || changes[0].Source != SourceCorroborated || tracks[0].ReleaseYear != "1975" {
		t.Errorf("changes = %+v, year = %q", changes, tracks[0].ReleaseYear)
	}

	var failed []int
	searcher.err = errors.New("offline")
	r.Corroborate(context.Background(), tracks, searcher, func(i int, _ error) { failed = append(failed, i) })
	if !reflect.DeepEqual(failed, []int{0, 2}) {
		t.Errorf("failed = %v, want [0 2]", failed)
	}
}

func TestReview(t *testing.T) {
	tracks := newTracks(
		[3]string{"A", "Old", "1955"},
		[3]string{"B", "Fine", "1975"},
		[3]string{"C", "New", "1999"},
		[3]string{"D", "Odd", model.UnknownYear},
	)
	rng := Range{Min: 1960, Max: 1990}

	items, err := Review(tracks, rng)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	wantReasons := []Reason{ReasonBelowMin, ReasonAboveMax, ReasonInvalid}
	for i, it := range items {
		if it.Reason != wantReasons[i] {
			t.Errorf("items[%d].Reason = %v, want %v", i, it.Reason, wantReasons[i])
		}
	}
	if got := items[0].Describe(rng); got != "1955 (below minimum 1960)" {
		t.Errorf("Describe() = %q", got)
	}

	if _, err := Review(tracks, Range{Min: 1990, Max: 1960}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := (Range{Min: 1800, Max: 1900}).Validate(); err == nil {
		t.Error("expected error for minimum below floor")
	}
}

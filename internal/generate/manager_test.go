package generate_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/handiism/hitster-cards/internal/generate"
	"github.com/handiism/hitster-cards/internal/layout"
	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/render"
	"github.com/handiism/hitster-cards/internal/year"
)

type fakeSource struct {
	playlist *model.Playlist
	err      error
}

func (f *fakeSource) Playlist(context.Context, string) (*model.Playlist, error) {
	return f.playlist, f.err
}

type fakeLookup struct {
	years map[string]int
	calls int
}

func (f *fakeLookup) EarliestYear(_ context.Context, artist, title string) (int, bool, error) {
	f.calls++
	y, ok := f.years[artist+"|"+title]
	return y, ok, nil
}

type fakeSearcher struct {
	years []int
	err   error
}

func (f *fakeSearcher) CandidateYears(context.Context, string, string) ([]int, error) {
	return f.years, f.err
}

// fakeCodes writes a small placeholder file per code.
type fakeCodes struct {
	mu      sync.Mutex
	written []string
	failOn  int
}

func (f *fakeCodes) WriteFile(_ context.Context, dir string, ordinal int, content string) (string, error) {
	if ordinal == f.failOn {
		return "", errors.New("encoder exploded")
	}
	path := filepath.Join(dir, fmt.Sprintf("code_%d.png", ordinal))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.written = append(f.written, path)
	f.mu.Unlock()
	return path, nil
}

// fakeDoc writes a marker file on Save and can fail a number of saves.
type fakeDoc struct {
	pages    int
	failures *int
}

func (d *fakeDoc) AddPage() { d.pages++ }

func (d *fakeDoc) Line(layout.Line) {}

func (d *fakeDoc) Text(float64, float64, layout.Font, string) {}

func (d *fakeDoc) Image(string, layout.Rect) error { return nil }

func (d *fakeDoc) Width(s string, _ layout.Font) float64 { return float64(len(s)) * 5 }

func (d *fakeDoc) Save(path string) error {
	if *d.failures > 0 {
		*d.failures--
		return errors.New("disk full")
	}
	return os.WriteFile(path, []byte("deck"), 0o644)
}

func newPlaylist() *model.Playlist {
	return &model.Playlist{
		Name:  "Road Trip",
		Owner: "someone",
		Tracks: []*model.Track{
			model.NewTrack("Bohemian Rhapsody - Remastered 2011", "Queen", "A Night at the Opera", "2011", "https://open.spotify.com/track/aaa", ""),
			model.NewTrack("Dreams", "Fleetwood Mac", "Rumours", "1977", "https://open.spotify.com/track/bbb", ""),
			model.NewTrack("Blinding Lights", "The Weeknd", "After Hours", "2019", "spotify:track:ccc", ""),
		},
	}
}

type harness struct {
	manager *generate.Manager
	codes   *fakeCodes
	events  []generate.ProgressEvent
	output  string
	tmp     string
	fails   int
}

func newHarness(t *testing.T, opts generate.Options, deps generate.Dependencies) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{codes: &fakeCodes{}, output: filepath.Join(dir, "out", "deck.pdf"), tmp: filepath.Join(dir, "tmp")}

	opts.PlayerURL = "https://player.example.com"
	if opts.Grid.Rows == 0 {
		opts.Grid = layout.DefaultSpec()
	}
	if opts.OutputPath == "" {
		opts.OutputPath = h.output
	}
	opts.TempDir = h.tmp
	opts.Reconcile.CurrentYear = 2026

	if deps.Source == nil {
		deps.Source = &fakeSource{playlist: newPlaylist()}
	}
	deps.Codes = h.codes
	deps.NewDocument = func(layout.PageSize, render.Metadata) render.Document {
		return &fakeDoc{failures: &h.fails}
	}

	m, err := generate.NewManager(opts, deps, func(e generate.ProgressEvent) {
		h.events = append(h.events, e)
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	h.manager = m
	return h
}

func (h *harness) warnings() []string {
	var out []string
	for _, e := range h.events {
		if e.Level == generate.LevelWarning {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestNewManager_Validation(t *testing.T) {
	src := &fakeSource{}
	codes := &fakeCodes{}

	if _, err := generate.NewManager(generate.Options{Grid: layout.DefaultSpec()}, generate.Dependencies{Source: src, Codes: codes}, nil); err == nil {
		t.Error("expected error without player url")
	}
	if _, err := generate.NewManager(generate.Options{PlayerURL: "https://p", Grid: layout.DefaultSpec()}, generate.Dependencies{Codes: codes}, nil); err == nil {
		t.Error("expected error without source")
	}
	bad := layout.DefaultSpec()
	bad.Rows = 0
	if _, err := generate.NewManager(generate.Options{PlayerURL: "https://p", Grid: bad}, generate.Dependencies{Source: src, Codes: codes}, nil); !errors.Is(err, layout.ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestManager_LoadNormalizesTitles(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})

	playlist, err := h.manager.Load(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := playlist.Tracks[0].Title; got != "Bohemian Rhapsody" {
		t.Errorf("title = %q", got)
	}
	if got := playlist.Tracks[0].RawTitle; got != "Bohemian Rhapsody - Remastered 2011" {
		t.Errorf("raw title = %q", got)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	sourceErr := errors.New("boom")
	tests := []struct {
		name   string
		source *fakeSource
	}{
		{"source error", &fakeSource{err: sourceErr}},
		{"empty playlist", &fakeSource{playlist: &model.Playlist{Name: "empty"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, generate.Options{}, generate.Dependencies{Source: tt.source})
			_, err := h.manager.Load(context.Background(), "ref")
			if !errors.Is(err, generate.ErrNoTracks) {
				t.Fatalf("expected ErrNoTracks, got %v", err)
			}
			if tt.source.err != nil && !errors.Is(err, sourceErr) {
				t.Errorf("source error not wrapped: %v", err)
			}
		})
	}
}

func TestManager_StagesRequireLoad(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	ctx := context.Background()

	if _, err := h.manager.Verify(ctx); !errors.Is(err, generate.ErrNotLoaded) {
		t.Errorf("Verify: %v", err)
	}
	if _, err := h.manager.Review(year.Range{Min: 1950, Max: 2026}); !errors.Is(err, generate.ErrNotLoaded) {
		t.Errorf("Review: %v", err)
	}
	if _, err := h.manager.Render(ctx); !errors.Is(err, generate.ErrNotLoaded) {
		t.Errorf("Render: %v", err)
	}
}

func TestManager_CorroborateOnLoad(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{
		Searcher: &fakeSearcher{years: []int{2011, 1975}},
	})

	playlist, err := h.manager.Load(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := playlist.Tracks[0].ReleaseYear; got != "1975" {
		t.Errorf("year = %q, want 1975", got)
	}
	changes := h.manager.Changes()
	if len(changes) != 1 || changes[0].Source != year.SourceCorroborated {
		t.Errorf("changes = %v", changes)
	}
}

func TestManager_SearchFailureIsWarning(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{
		Searcher: &fakeSearcher{err: errors.New("rate limited")},
	})

	if _, err := h.manager.Load(context.Background(), "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(h.warnings()) == 0 {
		t.Error("expected a warning for the failed search")
	}
	if got := h.manager.Playlist().Tracks[0].ReleaseYear; got != "2011" {
		t.Errorf("year = %q, want unchanged", got)
	}
}

func TestManager_VerifyProposesWithoutApplying(t *testing.T) {
	lookup := &fakeLookup{years: map[string]int{"Queen|Bohemian Rhapsody": 1975}}
	h := newHarness(t, generate.Options{Reconcile: year.Options{MaxLookups: 5}}, generate.Dependencies{Lookup: lookup})
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	report, err := h.manager.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if report.Changes[0] != "1975" {
		t.Errorf("proposed = %v", report.Changes)
	}
	if got := h.manager.Playlist().Tracks[0].ReleaseYear; got != "2011" {
		t.Errorf("Verify applied a change: %q", got)
	}
	// Dreams (1977) and Blinding Lights (2019) are not suspicious.
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}

	applied := h.manager.ApplyVerified(report.Changes)
	if len(applied) != 1 || h.manager.Playlist().Tracks[0].ReleaseYear != "1975" {
		t.Errorf("ApplyVerified = %v", applied)
	}
}

func TestManager_VerifyBudget(t *testing.T) {
	lookup := &fakeLookup{}
	src := &fakeSource{playlist: &model.Playlist{Name: "p", Tracks: []*model.Track{
		model.NewTrack("a", "x", "", "2023", "spotify:track:1", ""),
		model.NewTrack("b", "x", "", "2024", "spotify:track:2", ""),
		model.NewTrack("c", "x", "", "2025", "spotify:track:3", ""),
	}}}
	h := newHarness(t, generate.Options{Reconcile: year.Options{MaxLookups: 5}}, generate.Dependencies{Source: src, Lookup: lookup})
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	h.manager.SetMaxLookups(2)
	report, err := h.manager.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if lookup.calls != 2 || len(report.Skipped) != 1 {
		t.Errorf("calls = %d skipped = %v", lookup.calls, report.Skipped)
	}
	if len(h.warnings()) == 0 {
		t.Error("expected a budget warning")
	}
}

func TestManager_Review(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	if _, err := h.manager.Load(context.Background(), "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	items, err := h.manager.Review(year.Range{Min: 1980, Max: 2026})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if len(items) != 1 || items[0].Index != 1 {
		t.Errorf("items = %v", items)
	}

	if _, err := h.manager.Review(year.Range{Min: 2000, Max: 1990}); !errors.Is(err, year.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestManager_Run(t *testing.T) {
	h := newHarness(t, generate.Options{
		Overrides: map[int]string{2: "2020"},
	}, generate.Dependencies{})

	summary, err := h.manager.Run(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Tracks != 3 || summary.Pages != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.OutputPath != h.output {
		t.Errorf("output = %q", summary.OutputPath)
	}
	if _, err := os.Stat(h.output); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if _, err := os.Stat(h.output + ".lock"); !os.IsNotExist(err) {
		t.Errorf("lock file left behind: %v", err)
	}
	if len(summary.Changes) != 1 || summary.Changes[0].Source != year.SourceOverride {
		t.Errorf("changes = %v", summary.Changes)
	}
	if len(h.codes.written) != 3 {
		t.Errorf("codes written = %d", len(h.codes.written))
	}
	for _, p := range h.codes.written {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("temporary file %s not removed", p)
		}
	}
	if summary.KeptTempDir != "" || summary.Retried {
		t.Errorf("unexpected retry state: %+v", summary)
	}
}

func TestManager_RunFillsReview(t *testing.T) {
	h := newHarness(t, generate.Options{
		YearRange: &year.Range{Min: 1980, Max: 2030},
		Overrides: map[int]string{0: "1975"},
	}, generate.Dependencies{})

	summary, err := h.manager.Run(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Changes) != 1 || summary.Changes[0].To != "1975" {
		t.Errorf("changes = %v", summary.Changes)
	}
	if len(summary.Review) != 2 {
		t.Fatalf("review = %v, want 2 items", summary.Review)
	}
	for i, want := range []int{0, 1} {
		if summary.Review[i].Index != want || summary.Review[i].Reason != year.ReasonBelowMin {
			t.Errorf("review[%d] = %+v", i, summary.Review[i])
		}
	}
}

func TestManager_RenderMalformedReference(t *testing.T) {
	pl := newPlaylist()
	pl.Tracks[1].ExternalURL = ""
	h := newHarness(t, generate.Options{}, generate.Dependencies{Source: &fakeSource{playlist: pl}})
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	summary, err := h.manager.Render(ctx)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(summary.MissingCodes) != 1 || summary.MissingCodes[0] != 1 {
		t.Errorf("missing = %v", summary.MissingCodes)
	}
	if len(h.warnings()) == 0 {
		t.Error("expected a warning")
	}
}

func TestManager_RenderCodeFailureIsWarning(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	h.codes.failOn = 2
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	summary, err := h.manager.Render(ctx)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(summary.MissingCodes) != 1 || summary.MissingCodes[0] != 1 {
		t.Errorf("missing = %v", summary.MissingCodes)
	}
}

func TestManager_RenderRetriesOnce(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	h.fails = 1
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	summary, err := h.manager.Render(ctx)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !summary.Retried || summary.KeptTempDir == "" {
		t.Errorf("summary = %+v", summary)
	}
	entries, err := os.ReadDir(summary.KeptTempDir)
	if err != nil || len(entries) != 3 {
		t.Errorf("kept dir entries = %d err = %v", len(entries), err)
	}
}

func TestManager_RenderFailsAfterRetry(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	h.fails = 2
	ctx := context.Background()

	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := h.manager.Render(ctx); err == nil {
		t.Fatal("expected error")
	}
}

func TestManager_OutputLocked(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(h.output), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := h.manager.Load(ctx, "ref"); err != nil {
		t.Fatal(err)
	}

	// Hold the lock the way a concurrent run would.
	unlock := lockFile(t, h.output+".lock")
	defer unlock()

	if _, err := h.manager.Render(ctx); !errors.Is(err, generate.ErrOutputLocked) {
		t.Errorf("expected ErrOutputLocked, got %v", err)
	}
}

func TestManager_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	m, err := generate.NewManager(generate.Options{
		PlayerURL: "https://player.example.com",
		Grid:      layout.DefaultSpec(),
		TempDir:   filepath.Join(dir, "tmp"),
	}, generate.Dependencies{
		Source: &fakeSource{playlist: newPlaylist()},
		Codes:  &fakeCodes{},
		NewDocument: func(layout.PageSize, render.Metadata) render.Document {
			return &fakeDoc{failures: new(int)}
		},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	summary, err := m.Run(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.OutputPath != "Hitster_Road Trip.pdf" {
		t.Errorf("output = %q", summary.OutputPath)
	}
	if _, err := os.Stat(filepath.Join(dir, summary.OutputPath)); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestManager_ApplyOverride(t *testing.T) {
	h := newHarness(t, generate.Options{}, generate.Dependencies{})
	if _, _, err := h.manager.ApplyOverride(0, "1975"); !errors.Is(err, generate.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := h.manager.Load(context.Background(), "ref"); err != nil {
		t.Fatal(err)
	}

	c, ok, err := h.manager.ApplyOverride(0, "1975")
	if err != nil || !ok || c.From != "2011" || c.To != "1975" {
		t.Fatalf("ApplyOverride = %+v, %v, %v", c, ok, err)
	}
	if _, ok, _ := h.manager.ApplyOverride(0, "  "); ok {
		t.Error("blank override should be ignored")
	}
	if _, _, err := h.manager.ApplyOverride(3, "1975"); err == nil {
		t.Error("expected out of range error")
	}
	if got := len(h.manager.Changes()); got != 1 {
		t.Errorf("changes = %d", got)
	}
}

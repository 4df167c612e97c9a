package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/handiism/hitster-cards/internal/identity"
	ioutils "github.com/handiism/hitster-cards/internal/io"
	"github.com/handiism/hitster-cards/internal/layout"
	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/render"
	"github.com/handiism/hitster-cards/internal/title"
	"github.com/handiism/hitster-cards/internal/year"
)

var (
	// ErrNoTracks is returned when the playlist yields no usable tracks.
	ErrNoTracks = errors.New("no tracks found")

	// ErrOutputLocked is returned when another run is writing the same file.
	ErrOutputLocked = errors.New("output file is locked by another run")

	// ErrNotLoaded is returned when a stage runs before Load.
	ErrNotLoaded = errors.New("playlist not loaded")
)

// Source returns the tracks of a playlist reference.
type Source interface {
	Playlist(ctx context.Context, ref string) (*model.Playlist, error)
}

// CodeWriter renders the content of a code face to an image file.
type CodeWriter interface {
	WriteFile(ctx context.Context, dir string, ordinal int, content string) (string, error)
}

// DocumentFactory creates an empty document for one render attempt.
type DocumentFactory func(page layout.PageSize, meta render.Metadata) render.Document

// Options configures a run. Overrides use 0-based track indices.
type Options struct {
	PlayerURL     string
	Grid          layout.Spec
	Reconcile     year.Options
	Verify        bool
	ApplyVerified bool
	YearRange     *year.Range
	Overrides     map[int]string
	OutputPath    string
	TempDir       string
	KeepTempFiles bool
}

// Dependencies are the collaborators of a Manager. Searcher and Lookup are
// optional.
type Dependencies struct {
	Source      Source
	Searcher    year.Searcher
	Lookup      year.Lookup
	Codes       CodeWriter
	NewDocument DocumentFactory
	Logger      *slog.Logger
}

// Summary describes a finished run.
type Summary struct {
	PlaylistName string
	Tracks       int
	Pages        int
	OutputPath   string

	// Changes lists every year change in the order it was made.
	Changes []year.Change

	// Review lists tracks outside the configured year range. Only Run
	// fills it.
	Review []year.ReviewItem

	// MissingCodes lists tracks printed without a code face.
	MissingCodes []int

	// Retried is set when the first render attempt failed.
	Retried bool

	// KeptTempDir is set when temporary images were left on disk.
	KeptTempDir string

	CleanupFailures []ioutils.RemovalFailure
}

// Manager runs the card pipeline: load, normalize, reconcile, encode, lay
// out and render. Stages can be run one by one for interactive use, or all
// at once with Run.
type Manager struct {
	opts       Options
	deps       Dependencies
	grid       *layout.Grid
	encoder    *identity.Encoder
	normalizer *title.Normalizer
	reconciler *year.Reconciler
	logger     *slog.Logger
	onProgress func(ProgressEvent)

	playlist *model.Playlist
	changes  []year.Change
	failures []ioutils.RemovalFailure
}

// NewManager creates a new Manager.
func NewManager(opts Options, deps Dependencies, onProgress func(ProgressEvent)) (*Manager, error) {
	if deps.Source == nil {
		return nil, errors.New("playlist source required")
	}
	if deps.Codes == nil {
		return nil, errors.New("code writer required")
	}
	if opts.PlayerURL == "" {
		return nil, errors.New("player url required")
	}
	grid, err := layout.NewGrid(opts.Grid)
	if err != nil {
		return nil, err
	}
	if deps.NewDocument == nil {
		deps.NewDocument = func(page layout.PageSize, meta render.Metadata) render.Document {
			return render.NewPDF(page, meta)
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Reconcile.Rules.RecentAfter == 0 && opts.Reconcile.Rules.ClassicAfter == 0 {
		opts.Reconcile.Rules = year.DefaultRules()
	}
	if opts.Reconcile.CurrentYear == 0 {
		opts.Reconcile.CurrentYear = time.Now().Year()
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}

	return &Manager{
		opts:       opts,
		deps:       deps,
		grid:       grid,
		encoder:    identity.NewEncoder(opts.PlayerURL),
		normalizer: title.NewNormalizer(title.DefaultPatterns()),
		reconciler: year.NewReconciler(opts.Reconcile),
		logger:     logger,
		onProgress: onProgress,
	}, nil
}

// Playlist returns the loaded playlist, or nil before Load.
func (m *Manager) Playlist() *model.Playlist { return m.playlist }

// Changes returns the year changes made so far.
func (m *Manager) Changes() []year.Change { return m.changes }

// CanVerify reports whether an external year lookup is configured.
func (m *Manager) CanVerify() bool { return m.deps.Lookup != nil }

// SetMaxLookups changes the lookup budget of later Verify calls.
func (m *Manager) SetMaxLookups(n int) { m.reconciler.SetMaxLookups(n) }

// Run executes every stage according to Options.
func (m *Manager) Run(ctx context.Context, ref string) (*Summary, error) {
	if _, err := m.Load(ctx, ref); err != nil {
		return nil, err
	}

	if m.opts.Verify {
		report, err := m.Verify(ctx)
		if err != nil {
			return nil, err
		}
		if m.opts.ApplyVerified {
			m.ApplyVerified(report.Changes)
		} else if len(report.Changes) > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("%d verified years not applied", len(report.Changes)), Level: LevelInfo})
		}
	}

	if len(m.opts.Overrides) > 0 {
		if _, err := m.ApplyOverrides(m.opts.Overrides); err != nil {
			return nil, err
		}
	}

	var review []year.ReviewItem
	if m.opts.YearRange != nil {
		items, err := m.Review(*m.opts.YearRange)
		if err != nil {
			return nil, err
		}
		review = items
	}

	summary, err := m.Render(ctx)
	if err != nil {
		return nil, err
	}
	summary.Review = review
	return summary, nil
}

// Load fetches the playlist, normalizes titles and corroborates the years
// of remastered tracks. Source failures and empty playlists both surface as
// ErrNoTracks.
func (m *Manager) Load(ctx context.Context, ref string) (*model.Playlist, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching playlist: %s", ref), Level: LevelInfo})

	playlist, err := m.deps.Source.Playlist(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTracks, err)
	}
	if playlist.Len() == 0 {
		return nil, ErrNoTracks
	}

	for _, track := range playlist.Tracks {
		track.Title = m.normalizer.Normalize(track.RawTitle)
		if track.TitleChanged() {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cleaned title: %q -> %q", track.RawTitle, track.Title), Level: LevelVerbose})
		}
	}

	m.playlist = playlist
	m.changes = nil

	if m.deps.Searcher != nil {
		changes := m.reconciler.Corroborate(ctx, playlist.Tracks, m.deps.Searcher, func(i int, err error) {
			m.trackWarning(i, "original release search failed", err)
		})
		m.record(changes)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found playlist: %s (%d tracks)", playlist.Name, playlist.Len()), Level: LevelSuccess})
	return playlist, nil
}

// Verify looks up suspicious years. The returned report proposes changes
// without applying them.
func (m *Manager) Verify(ctx context.Context) (*year.Report, error) {
	if m.playlist == nil {
		return nil, ErrNotLoaded
	}
	if m.deps.Lookup == nil {
		return &year.Report{Changes: map[int]string{}}, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Verifying suspicious release years (max %d lookups)", m.reconciler.MaxLookups()), Level: LevelInfo})

	report := m.reconciler.Verify(ctx, m.playlist.Tracks, m.deps.Lookup, func(c year.Check) {
		switch c.Outcome {
		case year.OutcomeFailed:
			m.trackWarning(c.Index, "year lookup failed", c.Err)
		case year.OutcomeChanged:
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s - %s: %s -> %s", c.Artist, c.Title, c.Current, c.Found), Level: LevelInfo})
		default:
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s - %s: %s", c.Artist, c.Title, c.Outcome), Level: LevelVerbose})
		}
	})

	if report.BudgetExhausted() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Lookup limit reached, %d suspicious tracks left unchecked", len(report.Skipped)), Level: LevelWarning})
	}
	return report, nil
}

// ApplyVerified commits verified years.
func (m *Manager) ApplyVerified(changes map[int]string) []year.Change {
	if m.playlist == nil {
		return nil
	}
	applied := year.ApplyVerified(m.playlist.Tracks, changes)
	m.record(applied)
	return applied
}

// ApplyOverrides commits operator-entered years by 0-based index.
func (m *Manager) ApplyOverrides(overrides map[int]string) ([]year.Change, error) {
	if m.playlist == nil {
		return nil, ErrNotLoaded
	}
	applied, err := year.ApplyOverrides(m.playlist.Tracks, overrides)
	if err != nil {
		return nil, err
	}
	m.record(applied)
	return applied, nil
}

// ApplyOverride commits one operator-entered year by 0-based index. A blank
// year or one equal to the current value changes nothing.
func (m *Manager) ApplyOverride(index int, yr string) (year.Change, bool, error) {
	if m.playlist == nil {
		return year.Change{}, false, ErrNotLoaded
	}
	c, ok, err := year.ApplyOverride(m.playlist.Tracks, index, yr)
	if err != nil || !ok {
		return c, ok, err
	}
	m.record([]year.Change{c})
	return c, true, nil
}

// Review lists tracks whose year falls outside r.
func (m *Manager) Review(r year.Range) ([]year.ReviewItem, error) {
	if m.playlist == nil {
		return nil, ErrNotLoaded
	}
	items, err := year.Review(m.playlist.Tracks, r)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Review #%d %s - %s: %s", it.Index+1, it.Artist, it.Title, it.Describe(r)), Level: LevelWarning})
	}
	return items, nil
}

func (m *Manager) record(changes []year.Change) {
	for _, c := range changes {
		m.logger.Info("release year changed",
			slog.Int("track_index", c.Index),
			slog.String("artist", c.Artist),
			slog.String("title", c.Title),
			slog.String("from", c.From),
			slog.String("to", c.To),
			slog.String("source", c.Source.String()),
		)
		m.progress(ProgressEvent{Message: "Updated " + c.String(), Level: LevelVerbose})
	}
	m.changes = append(m.changes, changes...)
}

func (m *Manager) trackWarning(index int, msg string, err error) {
	attrs := []any{slog.Int("track_index", index), slog.Any("error", err)}
	label := fmt.Sprintf("track %d", index+1)
	if m.playlist != nil && index >= 0 && index < m.playlist.Len() {
		t := m.playlist.Tracks[index]
		attrs = append(attrs, slog.String("artist", t.Artist), slog.String("title", t.Title))
		label = fmt.Sprintf("%s - %s", t.Artist, t.Title)
	}
	m.logger.Warn(msg, attrs...)
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s: %v", label, msg, err), Level: LevelWarning})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// outputPath returns the configured path or a name derived from the playlist.
func (m *Manager) outputPath() string {
	if m.opts.OutputPath != "" {
		return m.opts.OutputPath
	}
	return ioutils.DeckFileName(m.playlist.Name)
}

func newWorkDir(base string) (string, error) {
	dir := filepath.Join(base, "run-"+uuid.NewString())
	if err := ioutils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

func lockOutput(path string) (*flock.Flock, error) {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, path)
	}
	return lock, nil
}

func unlockOutput(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}

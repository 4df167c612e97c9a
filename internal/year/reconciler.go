package year

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/handiism/hitster-cards/internal/model"
)

// Lookup returns the earliest known release year of a recording.
// found is false when the service has no dated release for it.
type Lookup interface {
	EarliestYear(ctx context.Context, artist, title string) (year int, found bool, err error)
}

// Searcher returns the release years of catalog entries matching a track.
type Searcher interface {
	CandidateYears(ctx context.Context, artist, title string) ([]int, error)
}

// Source records where a track's final year came from.
type Source int

const (
	SourceNominal Source = iota
	SourceCorroborated
	SourceVerified
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceCorroborated:
		return "corroborated"
	case SourceVerified:
		return "verified"
	case SourceOverride:
		return "override"
	default:
		return "nominal"
	}
}

// Change is one entry in the reconciliation log.
type Change struct {
	Index  int
	Artist string
	Title  string
	From   string
	To     string
	Source Source
}

func (c Change) String() string {
	return fmt.Sprintf("%s - %s: %s -> %s (%s)", c.Artist, c.Title, c.From, c.To, c.Source)
}

// Options configures a Reconciler.
type Options struct {
	// MaxLookups bounds the number of Lookup calls made by Verify.
	MaxLookups int

	// Rules is the suspicion heuristic.
	Rules Rules

	// CurrentYear is the upper plausibility bound for looked up years.
	CurrentYear int
}

// Reconciler decides release years. It holds no per-track state.
type Reconciler struct {
	opts Options
}

// NewReconciler creates a Reconciler.
func NewReconciler(opts Options) *Reconciler {
	if opts.MaxLookups < 0 {
		opts.MaxLookups = 0
	}
	return &Reconciler{opts: opts}
}

// SetMaxLookups changes the lookup budget used by subsequent Verify calls.
func (r *Reconciler) SetMaxLookups(n int) {
	if n < 0 {
		n = 0
	}
	r.opts.MaxLookups = n
}

// MaxLookups returns the lookup budget.
func (r *Reconciler) MaxLookups() int {
	return r.opts.MaxLookups
}

// NeedsCorroboration reports whether a raw title suggests a reissue.
func NeedsCorroboration(rawTitle string) bool {
	lower := strings.ToLower(rawTitle)
	return strings.Contains(lower, "remaster") || strings.Contains(lower, "edition")
}

// PreferEarliest returns the earliest candidate when it is strictly earlier
// than the nominal year. Unparseable nominal years are never replaced here.
func PreferEarliest(nominal string, candidates []int, currentYear int) (string, bool) {
	current, ok := parseYear(nominal)
	if !ok {
		return nominal, false
	}

	earliest := 0
	for _, c := range candidates {
		if !Plausible(c, currentYear) {
			continue
		}
		if earliest == 0 || c < earliest {
			earliest = c
		}
	}

	if earliest == 0 || earliest >= current {
		return nominal, false
	}
	return strconv.Itoa(earliest), true
}

// Corroborate searches the catalog again for tracks whose raw title mentions
// a remaster or edition and moves them to an earlier year when one is found.
// Search failures are reported through onError and leave the track unchanged.
func (r *Reconciler) Corroborate(ctx context.Context, tracks []*model.Track, searcher Searcher, onError func(index int, err error)) []Change {
	if searcher == nil {
		return nil
	}

	var changes []Change
	for i, track := range tracks {
		if !NeedsCorroboration(track.RawTitle) {
			continue
		}

		candidates, err := searcher.CandidateYears(ctx, track.Artist, searchTitle(track.RawTitle))
		if err != nil {
			if onError != nil {
				onError(i, err)
			}
			continue
		}

		next, changed := PreferEarliest(track.ReleaseYear, candidates, r.opts.CurrentYear)
		if !changed {
			continue
		}
		changes = append(changes, Change{
			Index:  i,
			Artist: track.Artist,
			Title:  track.Title,
			From:   track.ReleaseYear,
			To:     next,
			Source: SourceCorroborated,
		})
		track.ReleaseYear = next
	}
	return changes
}

// Outcome classifies a single verification attempt.
type Outcome int

const (
	OutcomeChanged Outcome = iota
	OutcomeConfirmed
	OutcomeNotFound
	OutcomeImplausible
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChanged:
		return "changed"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeNotFound:
		return "not found"
	case OutcomeImplausible:
		return "implausible"
	default:
		return "failed"
	}
}

// Check records one Lookup call made by Verify.
type Check struct {
	Index   int
	Artist  string
	Title   string
	Current string
	Found   string
	Outcome Outcome
	Err     error
}

// Report is the result of Verify.
type Report struct {
	// Checks lists every lookup made, in playlist order.
	Checks []Check

	// Changes maps track index to the proposed year.
	Changes map[int]string

	// Skipped lists suspicious tracks left unchecked because the budget ran out.
	Skipped []int
}

// BudgetExhausted reports whether any suspicious track went unchecked.
func (r *Report) BudgetExhausted() bool {
	return len(r.Skipped) > 0
}

// Verify checks suspicious years against lookup. Each suspicious track uses
// one unit of the budget; non-suspicious tracks never reach lookup. Once the
// budget is spent the remaining suspicious tracks are listed in Skipped.
// Lookup failures are recorded per track and never abort the batch, though a
// cancelled context stops further lookups.
//
// Verify does not modify tracks; see ApplyVerified.
func (r *Reconciler) Verify(ctx context.Context, tracks []*model.Track, lookup Lookup, onCheck func(Check)) *Report {
	report := &Report{Changes: make(map[int]string)}
	if lookup == nil {
		return report
	}

	used := 0
	for i, track := range tracks {
		if !r.opts.Rules.IsSuspicious(track.ReleaseYear, track.Artist) {
			continue
		}
		if used >= r.opts.MaxLookups || ctx.Err() != nil {
			report.Skipped = append(report.Skipped, i)
			continue
		}
		used++

		check := Check{Index: i, Artist: track.Artist, Title: track.Title, Current: track.ReleaseYear}
		y, found, err := lookup.EarliestYear(ctx, track.Artist, track.Title)
		switch {
		case err != nil:
			check.Outcome = OutcomeFailed
			check.Err = err
		case !found:
			check.Outcome = OutcomeNotFound
		case !Plausible(y, r.opts.CurrentYear):
			check.Found = strconv.Itoa(y)
			check.Outcome = OutcomeImplausible
		default:
			check.Found = strconv.Itoa(y)
			if check.Found == track.ReleaseYear {
				check.Outcome = OutcomeConfirmed
			} else {
				check.Outcome = OutcomeChanged
				report.Changes[i] = check.Found
			}
		}

		report.Checks = append(report.Checks, check)
		if onCheck != nil {
			onCheck(check)
		}
	}
	return report
}

// ApplyVerified commits verified years to tracks. Indices outside the track
// list are ignored.
func ApplyVerified(tracks []*model.Track, changes map[int]string) []Change {
	return apply(tracks, changes, SourceVerified)
}

// ApplyOverrides commits operator-entered years. An override replaces any
// computed value; blank overrides are ignored. Out of range indices are an
// error and nothing is applied.
func ApplyOverrides(tracks []*model.Track, overrides map[int]string) ([]Change, error) {
	for idx := range overrides {
		if idx < 0 || idx >= len(tracks) {
			return nil, fmt.Errorf("override for track %d: index out of range (0-%d)", idx, len(tracks)-1)
		}
	}
	return apply(tracks, overrides, SourceOverride), nil
}

// ApplyOverride commits a single operator-entered year.
func ApplyOverride(tracks []*model.Track, index int, year string) (Change, bool, error) {
	changes, err := ApplyOverrides(tracks, map[int]string{index: year})
	if err != nil || len(changes) == 0 {
		return Change{}, false, err
	}
	return changes[0], true, nil
}

func apply(tracks []*model.Track, years map[int]string, source Source) []Change {
	indices := make([]int, 0, len(years))
	for idx := range years {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var changes []Change
	for _, idx := range indices {
		if idx < 0 || idx >= len(tracks) {
			continue
		}
		next := strings.TrimSpace(years[idx])
		if next == "" {
			continue
		}
		track := tracks[idx]
		if track.ReleaseYear == next {
			continue
		}
		changes = append(changes, Change{
			Index:  idx,
			Artist: track.Artist,
			Title:  track.Title,
			From:   track.ReleaseYear,
			To:     next,
			Source: source,
		})
		track.ReleaseYear = next
	}
	return changes
}

// searchTitle trims a title to the part before the first parenthesis or bracket.
func searchTitle(title string) string {
	if i := strings.IndexAny(title, "(["); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ioutils "github.com/handiism/hitster-cards/internal/io"
	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/render"
)

// Render encodes every track, writes the code images and produces the
// deck. A failed attempt is retried once with temporary files kept on disk.
func (m *Manager) Render(ctx context.Context) (*Summary, error) {
	if m.playlist == nil {
		return nil, ErrNotLoaded
	}

	output := m.outputPath()
	lock, err := lockOutput(output)
	if err != nil {
		return nil, err
	}
	defer unlockOutput(lock)

	m.failures = nil
	cards := m.cards()

	summary := &Summary{
		PlaylistName: m.playlist.Name,
		Tracks:       len(cards),
		Pages:        m.grid.PageCount(len(cards)),
		OutputPath:   output,
		Changes:      m.changes,
	}

	keep := m.opts.KeepTempFiles
	stats, dir, err := m.attempt(ctx, cards, output, keep)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.logger.Error("render failed, retrying", slog.String("output", output), slog.Any("error", err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Render failed, retrying with temporary files kept: %v", err), Level: LevelWarning})

		summary.Retried = true
		keep = true
		stats, dir, err = m.attempt(ctx, cards, output, keep)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", output, err)
		}
	}

	summary.MissingCodes = stats.MissingCodes
	summary.CleanupFailures = m.failures
	if keep {
		summary.KeptTempDir = dir
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %d cards on %d pages to %s", summary.Tracks, summary.Pages, output), Level: LevelSuccess})
	return summary, nil
}

// cards builds the card list. A malformed reference leaves the code face
// empty and is reported.
func (m *Manager) cards() []model.Card {
	cards := make([]model.Card, 0, m.playlist.Len())
	for i, track := range m.playlist.Tracks {
		code, err := m.encoder.Encode(track.ExternalURL)
		if err != nil {
			m.trackWarning(i, "cannot encode track reference", err)
			code = model.CodeFace{}
		}
		cards = append(cards, model.NewCard(i, track, code))
	}
	return cards
}

// attempt renders the whole deck once into a fresh work directory.
func (m *Manager) attempt(ctx context.Context, cards []model.Card, output string, keep bool) (render.Stats, string, error) {
	dir, err := newWorkDir(m.opts.TempDir)
	if err != nil {
		return render.Stats{}, "", err
	}

	var written []string
	defer func() {
		if !keep {
			m.cleanup(dir, written)
		}
	}()

	images := make(map[int]string, len(cards))
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return render.Stats{}, dir, err
		}
		if card.Code.Content == "" {
			continue
		}
		path, err := m.deps.Codes.WriteFile(ctx, dir, card.Index+1, card.Code.Content)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return render.Stats{}, dir, err
			}
			m.trackWarning(card.Index, "cannot render code image", err)
			continue
		}
		written = append(written, path)
		images[card.Index] = path
	}

	doc := m.deps.NewDocument(m.grid.Spec().Page, render.Metadata{
		Title:   m.playlist.Name,
		Author:  m.playlist.Owner,
		Subject: "Hitster cards",
	})

	stats, err := render.Draw(doc, m.grid, cards, images)
	if err != nil {
		return stats, dir, err
	}
	if err := doc.Save(output); err != nil {
		return stats, dir, err
	}
	return stats, dir, nil
}

func (m *Manager) cleanup(dir string, files []string) {
	failures := ioutils.RemoveFiles(files)
	for _, f := range failures {
		m.logger.Warn("cannot remove temporary file", slog.String("path", f.Path), slog.Any("error", f.Err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not remove %s: %v", f.Path, f.Err), Level: LevelWarning})
	}
	if err := ioutils.RemoveDirIfEmpty(dir); err != nil {
		m.logger.Warn("cannot remove work dir", slog.String("path", dir), slog.Any("error", err))
	}
	m.failures = append(m.failures, failures...)
}

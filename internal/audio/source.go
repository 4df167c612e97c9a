package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/year"
)

// LocalSource builds a playlist from an M3U file of local audio files.
//
// Each file must carry its catalog link in a SPOTIFY_URL tag. Lines that are
// catalog links themselves are accepted too; their artist and title come from
// the "#EXTINF:<sec>,Artist - Title" line above them.
//
// Example:
//
//	src := audio.NewLocalSource(func(loc string, err error) {
//	    log.Printf("skipping %s: %v", loc, err)
//	})
//	playlist, err := src.Playlist(ctx, "party.m3u8")
type LocalSource struct {
	onSkip func(location string, err error)
	now    func() time.Time
}

// NewLocalSource creates a LocalSource. onSkip, if set, is called for every
// entry that cannot become a track.
func NewLocalSource(onSkip func(location string, err error)) *LocalSource {
	return &LocalSource{onSkip: onSkip, now: time.Now}
}

// Playlist reads the playlist at path. The playlist name is the file name
// without extension.
func (s *LocalSource) Playlist(ctx context.Context, path string) (*model.Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	entries, err := ReadM3U(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("read playlist %s: %w", path, err)
	}

	playlist := &model.Playlist{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	currentYear := s.now().Year()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		track, err := s.track(e, currentYear)
		if err != nil {
			if s.onSkip != nil {
				s.onSkip(e.Location, err)
			}
			continue
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	return playlist, nil
}

func (s *LocalSource) track(e Entry, currentYear int) (*model.Track, error) {
	if e.IsURL() {
		artist, title := SplitDisplayTitle(e.Title)
		if title == "" {
			return nil, fmt.Errorf("no #EXTINF title for %s", e.Location)
		}
		return model.NewTrack(title, artist, "", model.UnknownYear, e.Location, ""), nil
	}

	tags, err := ReadTags(e.Location)
	if err != nil {
		return nil, err
	}
	if tags.Reference == "" {
		return nil, ErrNoReference
	}

	title, artist := tags.Title, tags.Artist
	if title == "" || artist == "" {
		a, t := SplitDisplayTitle(e.Title)
		if title == "" {
			title = t
		}
		if artist == "" {
			artist = a
		}
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(e.Location), filepath.Ext(e.Location))
	}

	releaseYear := model.UnknownYear
	if tags.Year > 0 {
		releaseYear = year.FormatReleaseDate(strconv.Itoa(tags.Year), currentYear)
	}

	return model.NewTrack(title, artist, tags.Album, releaseYear, tags.Reference, ""), nil
}

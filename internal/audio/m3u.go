package audio

import (
	"bufio"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// Entry is one item of an M3U playlist.
type Entry struct {
	// Location is a file path (resolved against the playlist directory) or
	// a URL.
	Location string

	// Title is the display text of the preceding #EXTINF line, if any.
	Title string

	// Duration in seconds from #EXTINF; -1 when unknown.
	Duration int
}

// IsURL reports whether the entry points at a remote resource.
func (e Entry) IsURL() bool {
	u, err := url.Parse(e.Location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ReadM3U parses a plain or extended M3U playlist. Relative paths are
// resolved against baseDir. Comment lines other than #EXTINF are ignored.
func ReadM3U(r io.Reader, baseDir string) ([]Entry, error) {
	var (
		entries []Entry
		pending *Entry
	)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			e := parseExtInf(strings.TrimPrefix(line, "#EXTINF:"))
			pending = &e
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		e := Entry{Duration: -1}
		if pending != nil {
			e = *pending
			pending = nil
		}
		e.Location = resolve(line, baseDir)
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseExtInf parses "<duration>,<title>". Attributes between the duration
// and the comma are ignored.
func parseExtInf(s string) Entry {
	e := Entry{Duration: -1}
	head, title, found := strings.Cut(s, ",")
	if found {
		e.Title = strings.TrimSpace(title)
	}
	if fields := strings.Fields(head); len(fields) > 0 {
		if d, err := strconv.Atoi(fields[0]); err == nil {
			e.Duration = d
		}
	}
	return e
}

func resolve(loc, baseDir string) string {
	if strings.Contains(loc, "://") {
		return loc
	}
	if u, err := url.Parse(loc); err == nil && u.Scheme == "file" {
		return filepath.FromSlash(u.Path)
	}
	loc = filepath.FromSlash(loc)
	if filepath.IsAbs(loc) || baseDir == "" {
		return loc
	}
	return filepath.Join(baseDir, loc)
}

// SplitDisplayTitle splits an "Artist - Title" display string.
func SplitDisplayTitle(s string) (artist, title string) {
	if a, t, ok := strings.Cut(s, " - "); ok {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}
	return "", strings.TrimSpace(s)
}

package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
)

// ReferenceKey names the tag that carries a track's catalog link: a TXXX
// frame description in MP3 files and a comment key elsewhere.
const ReferenceKey = "SPOTIFY_URL"

// ErrNoReference is returned for files that carry no catalog link.
var ErrNoReference = errors.New("no " + ReferenceKey + " tag")

// Tags is the metadata read from a local audio file.
type Tags struct {
	Title     string
	Artist    string
	Album     string
	Year      int
	Reference string
}

// ReadTags reads the metadata of an audio file. MP3 files are read with
// id3v2; FLAC, Ogg and MP4 files with dhowden/tag.
func ReadTags(path string) (Tags, error) {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return readID3(path)
	}
	return readGeneric(path)
}

func readID3(path string) (Tags, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, fmt.Errorf("read id3 tags of %s: %w", path, err)
	}
	defer t.Close()

	tags := Tags{
		Title:  t.Title(),
		Artist: t.Artist(),
		Album:  t.Album(),
		Year:   leadingYear(t.Year()),
	}
	for _, f := range t.GetFrames("TXXX") {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && strings.EqualFold(udtf.Description, ReferenceKey) {
			tags.Reference = strings.TrimSpace(udtf.Value)
			break
		}
	}
	return tags, nil
}

func readGeneric(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags of %s: %w", path, err)
	}

	tags := Tags{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Year:   m.Year(),
	}
	for k, v := range m.Raw() {
		// MP4 freeform atoms carry a "----:com.apple.iTunes:" prefix.
		name := k[strings.LastIndex(k, ":")+1:]
		if !strings.EqualFold(name, ReferenceKey) {
			continue
		}
		if s, ok := v.(string); ok {
			tags.Reference = strings.TrimSpace(s)
			break
		}
	}
	return tags, nil
}

// WriteReference stores a catalog link, plus optional descriptive tags, in
// an MP3 file. Empty fields in t are left untouched.
func WriteReference(path string, t Tags) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return fmt.Errorf("write tags of %s: only mp3 files are supported", path)
	}

	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer id3.Close()

	if t.Title != "" {
		id3.SetTitle(t.Title)
	}
	if t.Artist != "" {
		id3.SetArtist(t.Artist)
	}
	if t.Album != "" {
		id3.SetAlbum(t.Album)
	}
	if t.Year > 0 {
		id3.SetYear(strconv.Itoa(t.Year))
	}
	if t.Reference != "" {
		kept := id3.GetFrames("TXXX")
		id3.DeleteFrames("TXXX")
		for _, f := range kept {
			if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && !strings.EqualFold(udtf.Description, ReferenceKey) {
				id3.AddUserDefinedTextFrame(udtf)
			}
		}
		id3.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: ReferenceKey,
			Value:       t.Reference,
		})
	}

	return id3.Save()
}

func leadingYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return y
}

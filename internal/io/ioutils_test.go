package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Party: 80s/90s", "Party_ 80s_90s"},
		{"Mix...", "Mix"},
		{"Name   with  spaces ", "Name with spaces"},
		{`a<b>c"d|e?f*g\h`, "a_b_c_d_e_f_g_h"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeckFileName(t *testing.T) {
	if got := DeckFileName("Party Mix"); got != "Hitster_Party Mix.pdf" {
		t.Errorf("DeckFileName = %q", got)
	}
	if got := DeckFileName(" ?? "); got != "Hitster___.pdf" {
		t.Errorf("DeckFileName = %q", got)
	}
	if got := DeckFileName(""); got != "Hitster_cards.pdf" {
		t.Errorf("DeckFileName(\"\") = %q", got)
	}
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	if err := WriteFile(context.Background(), a, []byte("x")); err != nil {
		t.Fatal(err)
	}

	// A non-empty directory cannot be removed with os.Remove.
	full := filepath.Join(dir, "full")
	if err := EnsureDir(full); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	failures := RemoveFiles([]string{a, filepath.Join(dir, "gone.png"), full})
	if len(failures) != 1 || failures[0].Path != full {
		t.Fatalf("failures = %+v, want only %s", failures, full)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Errorf("%s still exists", a)
	}
}

func TestRemoveDirIfEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := RemoveDirIfEmpty(dir); err != nil {
		t.Fatalf("RemoveDirIfEmpty: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("empty dir was not removed")
	}
	if err := RemoveDirIfEmpty(dir); err != nil {
		t.Errorf("RemoveDirIfEmpty on missing dir: %v", err)
	}
}

func TestWriteFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := WriteFile(ctx, filepath.Join(t.TempDir(), "x"), nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestImageService_ScaleSquare(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 0, color.Gray{Y: 255})
	src.SetGray(0, 1, color.Gray{Y: 255})
	src.SetGray(1, 1, color.Gray{Y: 0})

	svc := NewImageService()
	scaled := svc.ScaleSquare(src, 8)
	if b := scaled.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}

	// Nearest-neighbour keeps hard edges: every pixel is black or white.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, _, _, _ := scaled.At(x, y).RGBA()
			if r != 0 && r != 0xffff {
				t.Fatalf("pixel (%d,%d) = %d, want black or white", x, y, r)
			}
		}
	}
	if r, _, _, _ := scaled.At(6, 1).RGBA(); r != 0xffff {
		t.Error("top-right quadrant is not white")
	}

	if same := svc.ScaleSquare(src, 2); same != image.Image(src) {
		t.Error("image of the requested size was copied")
	}

	data, err := svc.EncodePNG(scaled)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

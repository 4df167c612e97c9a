// Package qr renders card payloads as scannable QR code images.
package qr

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/handiism/hitster-cards/internal/identity"
	ioutils "github.com/handiism/hitster-cards/internal/io"
)

// moduleSize is the pixel size of one QR module before scaling.
const moduleSize = 10

// ParseLevel maps "low", "medium", "high" or "highest" to a recovery level.
func ParseLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "low", "l":
		return qrcode.Low, nil
	case "medium", "m":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h":
		return qrcode.Highest, nil
	default:
		return qrcode.Low, fmt.Errorf("unknown error correction level %q", s)
	}
}

// Renderer draws QR codes with a quiet zone of four modules.
type Renderer struct {
	level  qrcode.RecoveryLevel
	pixels int
	images *ioutils.ImageService
}

// NewRenderer creates a Renderer. When pixels is positive every image is
// scaled to pixels x pixels; otherwise each module is 10 pixels wide.
func NewRenderer(level qrcode.RecoveryLevel, pixels int) *Renderer {
	return &Renderer{level: level, pixels: pixels, images: ioutils.NewImageService()}
}

// Image renders content as a black on white QR code.
func (r *Renderer) Image(content string) (image.Image, error) {
	code, err := qrcode.New(content, r.level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return r.images.ScaleSquare(code.Image(-moduleSize), r.pixels), nil
}

// WriteFile renders content to a PNG named after the card ordinal inside dir
// and returns its path.
func (r *Renderer) WriteFile(ctx context.Context, dir string, ordinal int, content string) (string, error) {
	img, err := r.Image(content)
	if err != nil {
		return "", err
	}
	data, err := r.images.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	path := filepath.Join(dir, identity.ArtifactName(ordinal))
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

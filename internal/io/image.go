package ioutils

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// ImageService scales and encodes the raster images placed on cards.
//
// Example usage:
//
//	svc := NewImageService()
//	scaled := svc.ScaleSquare(code, 600)
//	data, _ := svc.EncodePNG(scaled)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ScaleSquare scales img to size x size pixels with nearest-neighbour
// sampling, which keeps the module edges of a scannable code sharp.
// Images that already have that size are returned as is.
func (s *ImageService) ScaleSquare(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() == size && b.Dy() == size) {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG encodes img as PNG with best compression.
func (s *ImageService) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

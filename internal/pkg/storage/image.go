package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registered so uploads in these formats decode
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor normalizes uploaded yacht photos before storage.
type ImageProcessor struct {
	quality int
}

// NewImageProcessor creates an ImageProcessor with default JPEG quality.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 82}
}

// FitJPEG decodes the source image, scales it down to fit within
// maxWidth x maxHeight (never upscaling) and re-encodes it as JPEG.
func (p *ImageProcessor) FitJPEG(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

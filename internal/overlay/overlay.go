package overlay

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// Params control how the watermark is scaled and placed.
type Params struct {
	// Position selects the anchored corner.
	Position Position

	// Margin is the offset from the anchored edges in pixels.
	Margin int

	// Opacity multiplies the watermark's alpha channel before compositing.
	// 0 is fully transparent, 1 is the watermark's own alpha.
	Opacity float64

	// ScalePercentage resizes the watermark relative to its original
	// dimensions; 100 keeps it unchanged.
	ScalePercentage float64
}

// Compose decodes the source and watermark images, scales the watermark,
// and composites it over the source at the requested corner.
//
// The only failure mode is an unreadable or undecodable input file.
func Compose(inputPath, watermarkPath string, p Params) (image.Image, error) {
	src, err := imaging.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", inputPath, err)
	}

	mark, err := imaging.Open(watermarkPath)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", watermarkPath, err)
	}

	scaled := Scale(mark, p.ScalePercentage)

	srcBounds := src.Bounds()
	markBounds := scaled.Bounds()
	x, y := p.Position.Offset(
		srcBounds.Dx(), srcBounds.Dy(),
		markBounds.Dx(), markBounds.Dy(),
		p.Margin,
	)

	return imaging.Overlay(src, scaled, image.Pt(x, y), p.Opacity), nil
}

// Scale resizes img to pct percent of its original dimensions, rounding
// down. When the computed dimensions equal the originals the image is
// returned as-is.
func Scale(img image.Image, pct float64) image.Image {
	bounds := img.Bounds()
	w := int(float64(bounds.Dx()) * pct / 100)
	h := int(float64(bounds.Dy()) * pct / 100)
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}
	return transform.Resize(img, w, h, transform.Linear)
}

package overlay

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// Info contains metadata about an image file without its pixel data.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded format name as registered with image.Decode,
	// e.g. "png", "jpeg", "gif".
	Format string `json:"format"`

	// HasAlpha indicates whether the image's color model carries an alpha
	// channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo reads just enough of the file at path to report its dimensions,
// format, and alpha capability. The pixel data is not decoded.
func LoadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model:
		hasAlpha = true
	}
	if _, ok := cfg.ColorModel.(color.Palette); ok {
		hasAlpha = true
	}

	return &Info{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

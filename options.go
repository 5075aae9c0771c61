package watermark

import (
	"time"

	"go.uber.org/zap"

	"github.com/rn0x/image-video-watermark/internal/overlay"
)

// Position identifies the corner the watermark is anchored to.
type Position = overlay.Position

const (
	PositionTopLeft     = overlay.TopLeft
	PositionTopRight    = overlay.TopRight
	PositionBottomLeft  = overlay.BottomLeft
	PositionBottomRight = overlay.BottomRight
)

// Options control watermark placement and processing. Every field is
// optional: the zero value of a field falls back to its documented default,
// so a zero Options (or a nil *Options) behaves like DefaultOptions. Margin
// accepts a negative sentinel for a true zero margin.
type Options struct {
	// Position is the anchored corner. Unrecognized values behave like
	// PositionBottomRight. Default bottom-right.
	Position Position

	// Margin is the offset from the anchored edges in pixels. Default 10;
	// pass a negative value for a zero margin.
	Margin int

	// Opacity is the watermark transparency in [0,1]. Zero and negative
	// values fall back to the default 0.5.
	Opacity float64

	// ScalePercentage resizes the watermark relative to its original
	// dimensions; 100 keeps it unchanged. Default 10.
	ScalePercentage float64

	// OutputDir is where the intermediate output file is written before
	// being read back and deleted. Created if missing. Default "output",
	// relative to the working directory.
	OutputDir string

	// FFmpegPath is an explicit ffmpeg executable path. When empty, ffmpeg
	// is resolved from the search path per invocation.
	FFmpegPath string

	// Timeout bounds the wait on the external process; on expiry the child
	// is killed and ErrTimeout is returned. Zero means no timeout, in which
	// case a hung tool blocks until the caller's context is done.
	Timeout time.Duration

	// Logger receives debug and info events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns Options populated with the documented defaults.
func DefaultOptions() *Options {
	return &Options{
		Position:        PositionBottomRight,
		Margin:          10,
		Opacity:         0.5,
		ScalePercentage: 10,
		OutputDir:       "output",
	}
}

// normalize copies opts and fills every unset field with its default. A nil
// opts means all defaults. A negative Margin is the sentinel for a true zero
// margin; zero and negative Opacity fall back to the default.
func normalize(opts *Options) *Options {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Position == "" {
		o.Position = PositionBottomRight
	}
	if o.Margin == 0 {
		o.Margin = 10
	} else if o.Margin < 0 {
		o.Margin = 0
	}
	if o.Opacity <= 0 {
		o.Opacity = 0.5
	}
	if o.ScalePercentage <= 0 {
		o.ScalePercentage = 10
	}
	if o.OutputDir == "" {
		o.OutputDir = "output"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &o
}

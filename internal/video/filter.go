package video

import (
	"fmt"
	"strconv"

	"github.com/rn0x/image-video-watermark/internal/overlay"
)

// OverlayFilter builds the filter_complex graph handed to ffmpeg: the
// watermark stream is scaled on both axes, converted to an alpha-capable
// pixel format, has its alpha multiplied by opacity, and is overlaid onto
// the primary stream at the corner expression for pos.
func OverlayFilter(pos overlay.Position, margin int, opacity, scalePct float64) string {
	factor := strconv.FormatFloat(scalePct/100, 'f', -1, 64)
	alpha := strconv.FormatFloat(opacity, 'f', -1, 64)
	return fmt.Sprintf(
		"[1:v]scale=iw*%s:ih*%s,format=rgba,colorchannelmixer=aa=%s[wm];[0:v][wm]overlay=%s",
		factor, factor, alpha, overlayExpr(pos, margin),
	)
}

// overlayExpr returns the overlay filter's x:y expression for the given
// corner, using ffmpeg's main (W/H) and overlay (w/h) dimension tokens.
// Unrecognized positions fall back to bottom-right.
func overlayExpr(pos overlay.Position, margin int) string {
	switch pos {
	case overlay.TopLeft:
		return fmt.Sprintf("%d:%d", margin, margin)
	case overlay.TopRight:
		return fmt.Sprintf("W-w-%d:%d", margin, margin)
	case overlay.BottomLeft:
		return fmt.Sprintf("%d:H-h-%d", margin, margin)
	default:
		return fmt.Sprintf("W-w-%d:H-h-%d", margin, margin)
	}
}

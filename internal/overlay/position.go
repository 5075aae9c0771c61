package overlay

// Position identifies which corner of the source canvas the watermark is
// anchored to.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Offset computes the top-left placement of a watermark of wmW x wmH pixels
// within a source canvas of srcW x srcH pixels, offset from the anchored
// edges by margin pixels.
//
// An unrecognized position yields the bottom-right placement. The result is
// not clamped to the canvas; a watermark larger than the source produces
// negative coordinates.
func (p Position) Offset(srcW, srcH, wmW, wmH, margin int) (x, y int) {
	switch p {
	case TopLeft:
		return margin, margin
	case TopRight:
		return srcW - wmW - margin, margin
	case BottomLeft:
		return margin, srcH - wmH - margin
	case BottomRight:
		return srcW - wmW - margin, srcH - wmH - margin
	default:
		return srcW - wmW - margin, srcH - wmH - margin
	}
}

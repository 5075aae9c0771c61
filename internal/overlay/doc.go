// Package overlay implements the still-image half of the watermarking
// pipeline: decoding the source and watermark images, scaling the watermark
// by a percentage, computing its corner placement, and compositing it over
// the source with source-over blending.
//
// # Coordinate System
//
// All placement coordinates are 0-based with (0,0) at the top-left corner of
// the source canvas; X increases rightward and Y increases downward. The
// placement returned by Position.Offset is the top-left corner of the scaled
// watermark within that canvas.
//
// # Placement
//
// The four named corners are offset from the respective edges by a margin in
// pixels. An unrecognized position falls back to the bottom-right placement;
// this is a documented default, not an error. No bounds checking is
// performed: a watermark larger than the source yields negative offsets,
// which the compositor clips.
//
// # Compositing
//
// Compose performs source-over blending with the watermark's alpha channel
// multiplied by the requested opacity. Opacity 0 leaves the source pixels
// untouched; opacity 1 replaces them wherever the watermark is fully opaque.
package overlay

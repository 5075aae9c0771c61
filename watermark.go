// Package watermark overlays a watermark image onto a still image or a
// video file and returns the composited output as an in-memory buffer.
//
// Still images are composited in-process; videos are handled by shelling
// out to ffmpeg with a generated filter graph. The two paths are selected
// purely by the input file's extension: .mp4, .avi, and .mov
// (case-insensitive) are treated as video, everything else as an image.
//
// Both paths share the same lifecycle: the result is written to a uniquely
// named file under Options.OutputDir, read back into memory, and deleted.
// Callers only ever receive the buffer, never a path.
package watermark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rn0x/image-video-watermark/internal/overlay"
	"github.com/rn0x/image-video-watermark/internal/video"
)

const jpegQuality = 90

// Result holds the composited output file's raw bytes. The backing file has
// already been deleted by the time a Result is returned.
type Result struct {
	Buffer []byte
}

// Callback receives the outcome of an asynchronous invocation. Exactly one
// of the arguments is non-nil.
type Callback func(*Result, error)

// Apply watermarks the file at inputPath with the image at watermarkPath
// and returns the composited output. A nil opts applies all defaults.
//
// The returned error wraps one of the package's error classes; see the
// variables in errors.go.
func Apply(ctx context.Context, inputPath, watermarkPath string, opts *Options) (*Result, error) {
	return run(ctx, inputPath, watermarkPath, opts)
}

// Go is the callback-style counterpart of Apply. It starts the work in a
// new goroutine and invokes cb exactly once, with either a result or an
// error, never both. Failures are delivered through cb, never panicked.
func Go(ctx context.Context, inputPath, watermarkPath string, opts *Options, cb Callback) {
	go func() {
		cb(run(ctx, inputPath, watermarkPath, opts))
	}()
}

// IsVideo reports whether path is routed to the video handler. The decision
// is purely textual, based on the file extension; file contents are never
// inspected, so a mislabeled file is processed by the wrong handler.
func IsVideo(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".avi", ".mov":
		return true
	}
	return false
}

// run is the single execution path behind both completion styles.
func run(ctx context.Context, inputPath, watermarkPath string, opts *Options) (*Result, error) {
	o := normalize(opts)

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	if IsVideo(inputPath) {
		return runVideo(ctx, inputPath, watermarkPath, o)
	}
	return runImage(inputPath, watermarkPath, o)
}

func runImage(inputPath, watermarkPath string, o *Options) (*Result, error) {
	o.Logger.Debug("compositing image watermark",
		zap.String("input", inputPath),
		zap.String("watermark", watermarkPath),
		zap.String("position", string(o.Position)),
	)

	img, err := overlay.Compose(inputPath, watermarkPath, overlay.Params{
		Position:        o.Position,
		Margin:          o.Margin,
		Opacity:         o.Opacity,
		ScalePercentage: o.ScalePercentage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	outPath, err := outputPath(o.OutputDir, inputPath, ".jpg")
	if err != nil {
		return nil, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrFilesystem, outPath, err)
	}
	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: encode %s: %v", ErrFilesystem, outPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrFilesystem, outPath, err)
	}

	return collect(outPath, o)
}

func runVideo(ctx context.Context, inputPath, watermarkPath string, o *Options) (*Result, error) {
	bin, err := video.Resolve(o.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}

	outPath, err := outputPath(o.OutputDir, inputPath, ".mp4")
	if err != nil {
		return nil, err
	}

	o.Logger.Debug("overlaying video watermark",
		zap.String("input", inputPath),
		zap.String("watermark", watermarkPath),
		zap.String("ffmpeg", bin),
	)

	runner := video.NewRunner(bin, o.Logger)
	err = runner.Overlay(ctx, video.Params{
		InputPath:     inputPath,
		WatermarkPath: watermarkPath,
		OutputPath:    outPath,
		Filter:        video.OverlayFilter(o.Position, o.Margin, o.Opacity, o.ScalePercentage),
	})
	if err != nil {
		var exit *video.ExitError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			if o.Timeout > 0 {
				return nil, fmt.Errorf("%w (after %s)", ErrTimeout, o.Timeout)
			}
			return nil, ErrTimeout
		case errors.As(err, &exit):
			return nil, &ExitCodeError{Code: exit.Code, Stderr: exit.Stderr}
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrSpawn, err)
		}
	}

	return collect(outPath, o)
}

// outputPath ensures dir exists and derives a per-invocation output file
// name from the input's base name plus a random segment, so concurrent
// calls on same-named inputs never collide.
func outputPath(dir, inputPath, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir %s: %v", ErrFilesystem, dir, err)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, fmt.Sprintf("%s.%s.output%s", base, uuid.NewString(), ext)), nil
}

// collect reads the produced file into memory and deletes it.
func collect(path string, o *Options) (*Result, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFilesystem, path, err)
	}
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("%w: remove %s: %v", ErrFilesystem, path, err)
	}
	o.Logger.Debug("collected output", zap.String("path", path), zap.Int("bytes", len(buf)))
	return &Result{Buffer: buf}, nil
}

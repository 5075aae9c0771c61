package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	watermark "github.com/rn0x/image-video-watermark"
	"github.com/rn0x/image-video-watermark/internal/config"
	"github.com/rn0x/image-video-watermark/internal/overlay"
	"github.com/rn0x/image-video-watermark/internal/video"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("watermark %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	cfg := config.Load()

	fs := flag.NewFlagSet("watermark", flag.ExitOnError)
	position := fs.String("position", "bottom-right", "corner placement: top-left, top-right, bottom-left, bottom-right")
	margin := fs.Int("margin", 10, "offset from the anchored edges in pixels")
	opacity := fs.Float64("opacity", 0.5, "watermark opacity in [0,1]")
	scale := fs.Float64("scale", 10, "watermark size as a percentage of its original dimensions")
	out := fs.String("out", "", "result file path (default: <input>.watermarked.<ext>; \"-\" for stdout)")
	timeout := fs.Duration("timeout", cfg.Timeout, "bound the wait on ffmpeg (0 disables)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: watermark [flags] <input> <watermark-image>\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment variables:\n")
		fmt.Fprintf(fs.Output(), "  WATERMARK_OUTPUT_DIR    intermediate output directory (default \"output\")\n")
		fmt.Fprintf(fs.Output(), "  WATERMARK_FFMPEG_PATH   explicit ffmpeg executable\n")
		fmt.Fprintf(fs.Output(), "  WATERMARK_FFPROBE_PATH  explicit ffprobe executable\n")
		fmt.Fprintf(fs.Output(), "  WATERMARK_TIMEOUT       ffmpeg timeout, e.g. 2m\n")
		fmt.Fprintf(fs.Output(), "  WATERMARK_LOG_LEVEL     \"debug\" enables debug logging\n")
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}
	inputPath, watermarkPath := fs.Arg(0), fs.Arg(1)

	logger := buildLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()
	logInputGeometry(ctx, logger, cfg, inputPath)

	// The flag value is literal, but the library treats Margin 0 as "use
	// the default"; a real zero margin is requested with the negative
	// sentinel.
	marginOpt := *margin
	if marginOpt == 0 {
		marginOpt = -1
	}

	result, err := watermark.Apply(ctx, inputPath, watermarkPath, &watermark.Options{
		Position:        watermark.Position(*position),
		Margin:          marginOpt,
		Opacity:         *opacity,
		ScalePercentage: *scale,
		OutputDir:       cfg.OutputDir,
		FFmpegPath:      cfg.FFmpegPath,
		Timeout:         *timeout,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("watermarking failed", zap.Error(err))
	}

	if *out == "-" {
		if _, err := os.Stdout.Write(result.Buffer); err != nil {
			logger.Fatal("writing result to stdout failed", zap.Error(err))
		}
		return
	}

	dest := *out
	if dest == "" {
		dest = defaultDest(inputPath)
	}
	if err := os.WriteFile(dest, result.Buffer, 0o644); err != nil {
		logger.Fatal("writing result failed", zap.String("path", dest), zap.Error(err))
	}
	logger.Info("wrote watermarked output",
		zap.String("path", dest),
		zap.Int("bytes", len(result.Buffer)),
	)
}

func buildLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// logInputGeometry logs the input's dimensions when they can be determined.
// Probe failures are reported at debug level and never abort the run.
func logInputGeometry(ctx context.Context, logger *zap.Logger, cfg *config.Config, inputPath string) {
	if watermark.IsVideo(inputPath) {
		probe, err := video.Probe(ctx, cfg.FFprobePath, inputPath)
		if err != nil {
			logger.Debug("ffprobe failed", zap.String("input", inputPath), zap.Error(err))
			return
		}
		logger.Info("input video",
			zap.String("path", inputPath),
			zap.Int("width", probe.Width),
			zap.Int("height", probe.Height),
			zap.Float64("duration_secs", probe.Duration),
			zap.String("video_codec", probe.VideoCodec),
			zap.String("audio_codec", probe.AudioCodec),
		)
		return
	}

	info, err := overlay.LoadInfo(inputPath)
	if err != nil {
		logger.Debug("reading image header failed", zap.String("input", inputPath), zap.Error(err))
		return
	}
	logger.Info("input image",
		zap.String("path", inputPath),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.String("format", info.Format),
		zap.Bool("alpha", info.HasAlpha),
	)
}

func defaultDest(inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := ".jpg"
	if watermark.IsVideo(inputPath) {
		ext = ".mp4"
	}
	return base + ".watermarked" + ext
}

package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Resolve returns the path of the ffmpeg executable to run. An explicit
// path is returned unchanged; otherwise ffmpeg is looked up on the search
// path. The resolution happens once per invocation and the result is
// threaded through Runner rather than kept in shared state.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return exec.LookPath("ffmpeg")
}

// ExitError reports that ffmpeg started but exited non-zero.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Stderr holds the tail of the process's standard error output.
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffmpeg exited with code %d", e.Code)
}

// Runner invokes a resolved ffmpeg binary.
type Runner struct {
	ffmpeg string
	log    *zap.Logger
}

// NewRunner wraps the ffmpeg executable at path. A nil logger disables
// logging.
func NewRunner(path string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ffmpeg: path, log: log}
}

// Params describe one overlay invocation.
type Params struct {
	InputPath     string
	WatermarkPath string
	OutputPath    string

	// Filter is the filter_complex graph, typically built by OverlayFilter.
	Filter string
}

// Overlay runs ffmpeg with the primary input, the watermark input, and the
// filter graph, copying the audio stream unchanged and overwriting the
// output path. It blocks until the process exits or ctx is done; ctx expiry
// kills the child.
//
// A non-zero exit is returned as *ExitError. If ctx was the cause of the
// failure its error is returned instead. Any other failure means the
// process could not be started at all.
func (r *Runner) Overlay(ctx context.Context, p Params) error {
	cmd := exec.CommandContext(ctx, r.ffmpeg,
		"-i", p.InputPath,
		"-i", p.WatermarkPath,
		"-filter_complex", p.Filter,
		"-c:a", "copy",
		"-y",
		p.OutputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.log.Debug("running ffmpeg",
		zap.String("input", p.InputPath),
		zap.String("watermark", p.WatermarkPath),
		zap.String("filter", p.Filter),
		zap.String("output", p.OutputPath),
	)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &ExitError{Code: exit.ExitCode(), Stderr: stderrTail(stderr.String())}
	}
	return err
}

// stderrTail keeps the last few lines of ffmpeg's stderr, which is where it
// prints the actual failure reason.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	const maxTail = 512
	if len(s) > maxTail {
		s = s[len(s)-maxTail:]
	}
	return s
}

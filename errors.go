package watermark

import (
	"errors"
	"fmt"
)

// Error classes. Every failure returned by this package wraps exactly one of
// these and can be matched with errors.Is. No failure is retried or
// recovered locally.
var (
	// ErrDecode means the source or watermark image was unreadable or
	// could not be decoded.
	ErrDecode = errors.New("watermark: cannot decode image")

	// ErrToolNotFound means the ffmpeg executable could not be resolved.
	// It is reported before any process is spawned.
	ErrToolNotFound = errors.New("watermark: ffmpeg is not installed")

	// ErrToolExecution means ffmpeg ran but exited non-zero. The returned
	// error is an *ExitCodeError carrying the exit code.
	ErrToolExecution = errors.New("watermark: ffmpeg failed")

	// ErrSpawn means the ffmpeg process could not be started at all.
	ErrSpawn = errors.New("watermark: cannot start ffmpeg")

	// ErrFilesystem means creating the output directory or reading,
	// writing, or deleting the output file failed.
	ErrFilesystem = errors.New("watermark: filesystem operation failed")

	// ErrTimeout means the configured timeout expired while waiting for
	// ffmpeg; the child process has been killed.
	ErrTimeout = errors.New("watermark: timed out waiting for ffmpeg")
)

// ExitCodeError reports a non-zero ffmpeg exit. It matches ErrToolExecution
// under errors.Is.
type ExitCodeError struct {
	// Code is the process exit code.
	Code int

	// Stderr holds the tail of the process's standard error output. It is
	// informational only; no structured contract is assumed.
	Stderr string
}

func (e *ExitCodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("watermark: ffmpeg exited with code %d: %s", e.Code, e.Stderr)
	}
	return fmt.Sprintf("watermark: ffmpeg exited with code %d", e.Code)
}

func (e *ExitCodeError) Is(target error) bool { return target == ErrToolExecution }

// Package video drives the external ffmpeg binary to overlay a watermark
// onto a video stream. The watermark is scaled, alpha-adjusted, and placed
// by a generated filter graph; success or failure is determined solely by
// the child process's exit code.
package video

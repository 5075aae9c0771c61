package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ProbeResult summarizes the streams of a media file.
type ProbeResult struct {
	// Duration is the container duration in seconds.
	Duration   float64
	Width      int
	Height     int
	VideoCodec string
	AudioCodec string
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe (the executable at bin, or "ffprobe" from the search
// path when bin is empty) against filePath and reports the dimensions,
// duration, and codecs it finds.
func Probe(ctx context.Context, bin, filePath string) (*ProbeResult, error) {
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	result := &ProbeResult{}
	if parsed.Format.Duration != "" {
		result.Duration, _ = strconv.ParseFloat(parsed.Format.Duration, 64)
	}
	for _, s := range parsed.Streams {
		switch s.CodecType {
		case "video":
			result.VideoCodec = s.CodecName
			result.Width = s.Width
			result.Height = s.Height
		case "audio":
			result.AudioCodec = s.CodecName
		}
	}
	return result, nil
}

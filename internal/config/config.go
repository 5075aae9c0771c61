// Package config loads CLI configuration from the environment, with an
// optional .env file.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment-backed settings of the watermark CLI.
type Config struct {
	// OutputDir is where intermediate output files are written.
	OutputDir string

	// FFmpegPath overrides search-path resolution of ffmpeg when set.
	FFmpegPath string

	// FFprobePath is the ffprobe executable used for input probing.
	FFprobePath string

	// Timeout bounds the wait on the external process; zero disables it.
	Timeout time.Duration

	// LogLevel selects the logger: "debug" or anything else for info.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		OutputDir:   getEnv("WATERMARK_OUTPUT_DIR", "output"),
		FFmpegPath:  getEnv("WATERMARK_FFMPEG_PATH", ""),
		FFprobePath: getEnv("WATERMARK_FFPROBE_PATH", "ffprobe"),
		Timeout:     getDuration("WATERMARK_TIMEOUT", 0),
		LogLevel:    getEnv("WATERMARK_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

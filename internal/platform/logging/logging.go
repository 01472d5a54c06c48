package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings for the log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// FileConfig describes the rotating log file. The terminal UI owns stdout,
// so the application logs to disk.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a timestamped zerolog logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewFile returns a logger backed by a lumberjack rotating file and the
// writer so callers can close it on shutdown.
func NewFile(cfg FileConfig, level string) (zerolog.Logger, io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	w := &lj.Logger{
		Filename:   cfg.Path,
		MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   cfg.Compress,
	}
	return New(w, level), w, nil
}

// ParseLevel maps a case-insensitive level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Package logging sets up the slog logger used by the viewlink tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level, output format and destination of log records.
type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Default is used when no configuration is given.
var Default = Config{
	Level:      "info",
	Format:     "text",
	MaxSize:    10,
	MaxBackups: 3,
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Validate checks level and format.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Format)
	}
	if c.MaxSize < 0 || c.MaxBackups < 0 {
		return fmt.Errorf("log max_size and max_backups must not be negative")
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. Records go to console unless cfg.File names a
// file, which is then rotated by size; "-" means stdout. The returned closer
// releases the file.
func New(cfg Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	lvl, _ := ParseLevel(cfg.Level)

	var out io.WriteCloser
	switch cfg.File {
	case "":
		out = nopCloser{console}
	case "-":
		out = nopCloser{os.Stdout}
	default:
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), out, nil
}

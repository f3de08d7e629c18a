// Package logger configures the process log output. When a log directory is
// configured, output goes to both stderr and a size-rotated file.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"MEETSYNC_BACK-END/internal/config"
)

// Setup wires the stdlib logger according to the logging configuration.
// With an empty Dir the default stderr output is kept as-is.
func Setup(cfg *config.LoggingConfig) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if cfg.Dir == "" {
		return nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "app.log"),
		MaxSize:    int(cfg.MaxSizeMB),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAgeDays),
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(os.Stderr, fileWriter))
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/pickacard/constant"
)

const (
	logDir      = constant.LogDir
	logFileName = "pickacard.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging points the global logger at logs/pickacard.log when debug is set
// The terminal owns stdout and stderr while playing, so without debug logs are discarded
// Returns the open file, nil when logging is disabled or the file cannot be created
func setupLogging(debug bool) *os.File {
	if !debug {
		log.Logger = zerolog.New(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Logger = zerolog.New(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return nil
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f
}

// rotateLog renames an oversized log aside with a timestamp suffix
func rotateLog(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	stamp := time.Now().Format("20060102-150405")
	rotated := filepath.Join(filepath.Dir(logPath), fmt.Sprintf("pickacard-%s.log", stamp))
	_ = os.Rename(logPath, rotated)
}

// setupConsoleLogging sends human readable logs to w, used by non-interactive commands
func setupConsoleLogging(w io.Writer, level zerolog.Level) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

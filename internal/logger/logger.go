// Package logger provides structured logging using zerolog.
//
// The terminal belongs to the TUI, so by default logs go to a rotating
// file; console output is for --verbose runs without the alt screen.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents logger configuration.
type Config struct {
	Output     string // "file" (default), "stdout" or "stderr"
	Level      string // "debug", "info", "warn", "error"
	File       string // log file path, used when Output is "file"
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
}

var (
	mu     sync.Mutex
	closer io.Closer
)

// Init initializes the global zerolog logger with the given configuration.
func Init(cfg Config) error {
	level := parseLevel(cfg.Level)
	console := isConsole(cfg.Output)

	var writer io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		if cfg.File == "" {
			return errors.New("log file path is required for file output")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return errors.Wrapf(err, "create log directory for %s", cfg.File)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(cfg.MaxSizeMB, 1),
			MaxBackups: max(cfg.MaxBackups, 0),
		}
		writer = lj
		swapCloser(lj)
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.CallerMarshalFunc = shortCaller

	zlog.Logger = newLogger(writer, level, console)
	return nil
}

// Close flushes and closes the log file, if any. The global logger keeps
// working but discards output afterwards.
func Close() error {
	mu.Lock()
	c := closer
	closer = nil
	mu.Unlock()

	if c == nil {
		return nil
	}
	zlog.Logger = zerolog.Nop()
	return c.Close()
}

func swapCloser(c io.Closer) {
	mu.Lock()
	prev := closer
	closer = c
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

func newLogger(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
		if level == zerolog.DebugLevel {
			// Add Caller only for DEBUG level
			cw.PartsOrder = []string{"time", "level", "message", "caller"}
			cw.FormatCaller = func(i any) string {
				s, _ := i.(string)
				return "(" + s + ")"
			}
			return zerolog.New(cw).With().Timestamp().Caller().Logger()
		}
		return zerolog.New(cw).With().Timestamp().Logger()
	}

	// JSON output for files
	base := zerolog.New(w).With().Timestamp()
	if level == zerolog.DebugLevel {
		return base.Caller().Logger()
	}
	return base.Logger()
}

func isConsole(output string) bool {
	switch strings.ToLower(output) {
	case "stdout", "stderr":
		return true
	default:
		return false
	}
}

func shortCaller(_ uintptr, file string, line int) string {
	parts := strings.Split(file, string(filepath.Separator))
	if len(parts) > 1 {
		return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// parseLevel parses the log level string.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// Logger is a leveled logger with an explicit lifecycle: construct it once at
// process start, inject it into the components that log, and Close it at
// shutdown. It writes to stderr by default so MCP stdio traffic on stdout is
// never contaminated; when a directory is given it appends to a log file there
// instead.
type Logger struct {
	level  LogLevel
	logger *log.Logger
	file   *os.File
}

// New creates a logger at the given level. An unknown level defaults to info.
// If dir is non-empty the logger writes to opendota-mcp.log inside it.
func New(level, dir string) (*Logger, error) {
	var logLevel LogLevel
	switch strings.ToLower(level) {
	case "debug":
		logLevel = LogDebug
	case "warn":
		logLevel = LogWarn
	case "error":
		logLevel = LogError
	default:
		logLevel = LogInfo
	}

	l := &Logger{level: logLevel}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(dir, "opendota-mcp.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		l.logger = log.New(f, "", log.LstdFlags)
	} else {
		l.logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	return l, nil
}

// Close flushes and releases the file sink, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.level <= LogDebug {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.level <= LogInfo {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.level <= LogWarn {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...interface{}) {
	if l.level <= LogError {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}

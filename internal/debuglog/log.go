package debuglog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown input maps to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF", "NONE":
		return LevelOff
	default:
		return LevelInfo
	}
}

var (
	mu           sync.Mutex
	currentLevel LogLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// DefaultPath is the log file used when Setup gets no explicit path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".featured", "featured.log")
}

// Setup configures the logging system with the specified level and optional file path.
// If filePath is empty, defaults to ~/.featured/featured.log.
func Setup(level LogLevel, filePath ...string) error {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if level == LevelOff {
		logger = nil
		return nil
	}

	logPath := DefaultPath()
	if len(filePath) > 0 && filePath[0] != "" {
		logPath = filePath[0]
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	logFile = f
	logger = log.New(f, "featured ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

func SetLevel(level LogLevel) {
	mu.Lock()
	currentLevel = level
	mu.Unlock()
}

func GetLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// Close closes the log file if open
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logger = nil
		return err
	}
	return nil
}

func logf(level LogLevel, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < currentLevel || logger == nil {
		return
	}

	logger.Printf("[%s] %s", level.String(), fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

func Infof(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

func Warnf(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

func Errorf(format string, args ...any) {
	logf(LevelError, format, args...)
}

// FieldLogger appends key=value pairs to every message.
type FieldLogger struct {
	fields map[string]interface{}
}

func WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{fields: fields}
}

// formatFields renders fields sorted by key so lines are stable.
func (fl *FieldLogger) formatFields() string {
	if len(fl.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fl.fields))
	for k := range fl.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fl.fields[k]))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (fl *FieldLogger) logf(level LogLevel, format string, args ...any) {
	logf(level, "%s", fmt.Sprintf(format, args...)+fl.formatFields())
}

func (fl *FieldLogger) Debugf(format string, args ...any) { fl.logf(LevelDebug, format, args...) }
func (fl *FieldLogger) Infof(format string, args ...any)  { fl.logf(LevelInfo, format, args...) }
func (fl *FieldLogger) Warnf(format string, args ...any)  { fl.logf(LevelWarn, format, args...) }
func (fl *FieldLogger) Errorf(format string, args ...any) { fl.logf(LevelError, format, args...) }

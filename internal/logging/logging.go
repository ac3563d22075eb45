package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug enables verbose diagnostics.
	LevelDebug Level = iota
	// LevelInfo is the default operational level.
	LevelInfo
	// LevelWarn reports recoverable problems.
	LevelWarn
	// LevelError reports failures.
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel Level
	levelOnce    sync.Once
)

// parseLevel resolves the effective level from the DEBUG shortcut and
// LOG_LEVEL. DEBUG wins when set to a truthy value.
func parseLevel(debugEnv, levelEnv string) Level {
	switch strings.ToLower(debugEnv) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}

	switch strings.ToLower(levelEnv) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

func initLevel() {
	levelOnce.Do(func() {
		mu.Lock()
		currentLevel = parseLevel(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))
		mu.Unlock()
	})
}

// GetLevel returns the active log level, resolving it from the
// environment on first use.
func GetLevel() Level {
	initLevel()
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// SetLevel overrides the active level. Intended for tests and for
// command-line tools that manage verbosity with flags.
func SetLevel(l Level) {
	initLevel()
	mu.Lock()
	currentLevel = l
	mu.Unlock()
}

// IsDebugEnabled reports whether debug messages are being emitted.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	if GetLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	if GetLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning.
func Warn(format string, args ...interface{}) {
	if GetLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error.
func Error(format string, args ...interface{}) {
	if GetLevel() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Fatal logs an error and exits the process.
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// Printf is a pass-through to log.Printf for messages that must print
// regardless of the active level.
func Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

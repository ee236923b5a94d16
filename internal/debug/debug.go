// Package debug is a small leveled logger gated by the SEMFORA_DEBUG
// environment variable, mirroring the teacher's internal/debug convention.
// No third-party logging library in the retrieval pack fit this concern
// (the one logging dep present, ternarybob/arbor, belongs to an unrelated
// CLI-tooling repo and pulls in an unrelated chromedp/testcontainers
// dependency chain) so this stays on the standard library.
package debug

import (
	"fmt"
	"log"
	"os"
	"sync"
)

type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	mu      sync.RWMutex
	current = levelFromEnv()
	logger  = log.New(os.Stderr, "", log.LstdFlags)
)

func levelFromEnv() Level {
	switch os.Getenv("SEMFORA_DEBUG") {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelOff
	}
}

// SetLevel overrides the configured level, for tests.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return current >= l
}

func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		logger.Output(2, "[debug] "+fmt.Sprintf(format, args...))
	}
}

func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		logger.Output(2, "[info] "+fmt.Sprintf(format, args...))
	}
}

func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		logger.Output(2, "[warn] "+fmt.Sprintf(format, args...))
	}
}

func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		logger.Output(2, "[error] "+fmt.Sprintf(format, args...))
	}
}

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	EnvLogLevel = "RVGLSAVE_LOG_LEVEL"
	EnvJSONLog  = "RVGLSAVE_JSON_LOG"

	DefaultLevel = "warn"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(EnvJSONLog) == "1"

	// Prefix human output so it stands apart from command output
	if !jsonFormat {
		output = NewPrefixWriter("🏁 ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// ParseLevel maps a level name to hclog, falling back to DefaultLevel for
// empty or unknown names.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.LevelFromString(DefaultLevel)
	}
	return l
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = DefaultLevel
	}
	return level
}

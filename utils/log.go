package utils

import (
	"log/slog"
	"os"
	"strings"
)

// Canonical log field names shared by every package.
const (
	KeyBuildID  = "build_id"
	KeyKind     = "kind"
	KeyPath     = "path"
	KeyTemplate = "template"
	KeyOutput   = "output"
	KeyCount    = "count"
	KeyError    = "error"
)

func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Kind(k string) slog.Attr     { return slog.String(KeyKind, k) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Template(p string) slog.Attr { return slog.String(KeyTemplate, p) }
func Output(p string) slog.Attr   { return slog.String(KeyOutput, p) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger on stderr at the given level.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

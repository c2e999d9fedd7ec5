// Package logging builds the slog logger shared by the CLI and the import
// pipeline.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// ParseLevel maps a config level name to a slog.Level. Unknown names fall
// back to info and report false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a text or json logger writing to w. Times are formatted
// RFC3339 in UTC.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	log := slog.New(h)
	if !ok {
		log.Warn("unknown log level, using info", "level", level)
	}
	return log
}

// Package logging builds the leveled slog logger shared by the CLI.
// Records go to a terminal handler and, when a file sink is given, are
// fanned out to a JSON handler as well.
package logging

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps a level name to a slog.Level. Unknown values default to info.
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

type Options struct {
	Level  string
	Format string // "text" or "json"
	Writer io.Writer
	// File receives JSON records in addition to Writer. May be nil.
	File io.Writer
}

// New creates a logger from opts. A nil Writer discards terminal output.
func New(opts Options) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(opts.Level))
	hopts := &slog.HandlerOptions{Level: lvl}

	w := opts.Writer
	if w == nil {
		w = io.Discard
	}

	var handlers []slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handlers = append(handlers, slog.NewJSONHandler(w, hopts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(w, hopts))
	}
	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, hopts))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

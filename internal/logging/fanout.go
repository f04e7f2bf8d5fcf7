package logging

import (
	"context"
	"io"
	"log/slog"
)

// NewWithFile creates a logger that writes to the console per cfg.Format
// and duplicates every record into the file sink as JSON. Each sink gets
// its own handler: format "auto" still reaches the pretty handler on an
// interactive terminal, and ANSI codes never land in the file.
func NewWithFile(cfg Config, console io.Writer, file io.Writer) *Logger {
	if file == nil {
		cfg.Output = console
		return New(cfg)
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	})
	return &Logger{Logger: slog.New(fanoutHandler{
		handlers: []slog.Handler{newHandler(cfg, console), fileHandler},
	})}
}

// fanoutHandler forwards each record to every underlying handler.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: next}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return fanoutHandler{handlers: next}
}

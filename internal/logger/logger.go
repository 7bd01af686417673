// Package logger provides the slog handler used by tilegen.
//
// Log output format:
//
//	2006-01-02T15:04:05.000Z [LEVEL] message | key=value, key2=value2
//
// Records go to stderr unless a log file is configured, in which case the
// file is rotated by size with lumberjack.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ///////////////////////////////////////////////
// Levels
// ///////////////////////////////////////////////

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LookupLevel maps a case-insensitive level name to its slog.Level.
func LookupLevel(s string) (slog.Level, bool) {
	l, ok := levels[strings.ToLower(s)]
	return l, ok
}

// ParseLevel is LookupLevel with a fallback to slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	if l, ok := LookupLevel(s); ok {
		return l
	}
	return slog.LevelInfo
}

// ///////////////////////////////////////////////
// Handler
// ///////////////////////////////////////////////

// Handler formats records on a single line. Handlers derived through
// WithAttrs and WithGroup share the writer and its lock.
type Handler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string // group path, "" or "a.b."
	pre    string // attrs already rendered by WithAttrs
}

// NewHandler returns a Handler writing records at or above level to w.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{w: w, mu: &sync.Mutex{}, level: level}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.UTC().Format("2006-01-02T15:04:05.000Z"))
	b.WriteString(" [")
	b.WriteString(r.Level.String())
	b.WriteString("] ")
	b.WriteString(r.Message)

	attrs := h.pre
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	if attrs != "" {
		b.WriteString(" | ")
		b.WriteString(attrs)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(as []slog.Attr) slog.Handler {
	h2 := *h
	for _, a := range as {
		h2.pre = appendAttr(h2.pre, h.prefix, a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendAttr renders a as "prefix.key=value", flattening nested groups.
func appendAttr(dst, prefix string, a slog.Attr) string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, sub, ga)
		}
		return dst
	}
	if dst != "" {
		dst += ", "
	}
	return dst + prefix + a.Key + "=" + a.Value.String()
}

// ///////////////////////////////////////////////
// Constructor
// ///////////////////////////////////////////////

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger at level. With an empty path it writes to fallback;
// otherwise it writes to a size-rotated file at path. The returned Closer
// must be closed before exit.
func New(fallback io.Writer, path string, level slog.Level, maxSizeMB int) (*slog.Logger, io.Closer) {
	if path == "" {
		return slog.New(NewHandler(fallback, level)), nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
	}
	return slog.New(NewHandler(lj, level)), lj
}

// Package logging provides a compact colored slog handler and helpers to
// install it as the default logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler writes one line per record: time, colored level, message, attrs.
type Handler struct {
	mu     *sync.Mutex
	l      *log.Logger
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
	colors palette
}

type palette struct {
	debug, info, warn, err, key *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgHiBlue),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed),
		key:   color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{p.debug, p.info, p.warn, p.err, p.key} {
			c.DisableColor()
		}
	}
	return p
}

// NewHandler creates a Handler writing to out. Records below level are
// dropped. noColor turns off ANSI colors, e.g. when out is a file.
func NewHandler(out io.Writer, level slog.Leveler, noColor bool) *Handler {
	return &Handler{
		mu:     &sync.Mutex{},
		l:      log.New(out, "", 0),
		level:  level,
		colors: newPalette(noColor),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch {
	case r.Level >= slog.LevelError:
		level = h.colors.err.Sprint(level)
	case r.Level >= slog.LevelWarn:
		level = h.colors.warn.Sprint(level)
	case r.Level >= slog.LevelInfo:
		level = h.colors.info.Sprint(level)
	default:
		level = h.colors.debug.Sprint(level)
	}

	var b strings.Builder
	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		strings.TrimRight(b.String(), " "),
	)
	return nil
}

// writeAttr appends key=value. Attrs stored by WithAttrs already carry
// their group prefix, so callers pass an empty group for them.
func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	b.WriteString(h.colors.key.Sprint(key))
	b.WriteByte('=')
	b.WriteString(fmt.Sprint(a.Value.Resolve().Any()))
	b.WriteByte(' ')
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

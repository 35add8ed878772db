// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrIoWrite is returned when an error occurs while writing to the output.
var ErrIoWrite = errors.New("error when writing to output")

var (
	debugColor = color.New(color.FgWhite)
	infoColor  = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	timeColor  = color.New(color.Faint)
	msgColor   = color.New(color.FgHiWhite)
	attrColor  = color.New(color.FgHiBlack)
)

var _ slog.Handler = (*ColorHandler)(nil)

// ColorHandler is a slog handler that writes human-readable lines, colored
// when the destination is a terminal. Any other writer receives plain text,
// which keeps CI host logs free of escape sequences.
type ColorHandler struct {
	opts    *slog.HandlerOptions
	w       io.Writer
	mu      *sync.Mutex
	attrs   []slog.Attr
	group   string
	colored bool
}

// NewColorHandler creates a new ColorHandler writing to w.
func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &ColorHandler{
		opts:    opts,
		w:       w,
		mu:      &sync.Mutex{},
		colored: colored,
	}
}

// Enabled implements the slog.Handler interface.
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// WithAttrs implements the slog.Handler interface. Keys are qualified with
// the group active at the time the attribute is added.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		h2.attrs = append(h2.attrs, a)
	}

	return &h2
}

// WithGroup implements the slog.Handler interface.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	h2 := *h
	if h2.group != "" {
		h2.group += "."
	}

	h2.group += name

	return &h2
}

// Handle implements the slog.Handler interface.
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	out := strings.Builder{}
	out.WriteString(h.sprint(timeColor, r.Time.Format(TimeFormat)))
	out.WriteString(" ")
	out.WriteString(h.sprint(levelColor(r.Level), r.Level.String()+":"))
	out.WriteString(" ")
	out.WriteString(h.sprint(msgColor, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(&out, a.Key, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&out, h.qualify(a.Key), a)
		return true
	})

	out.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.w, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func (h *ColorHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}

	return h.group + "." + key
}

func (h *ColorHandler) sprint(c *color.Color, s string) string {
	if !h.colored {
		return s
	}

	return c.Sprint(s)
}

func (h *ColorHandler) writeAttr(out *strings.Builder, key string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	out.WriteString(" ")
	out.WriteString(h.sprint(attrColor, fmt.Sprintf("%s=%v", key, a.Value)))
}

func levelColor(l slog.Level) *color.Color {
	switch {
	case l <= slog.LevelDebug:
		return debugColor
	case l <= slog.LevelInfo:
		return infoColor
	case l < slog.LevelError:
		return warnColor
	default:
		return errorColor
	}
}

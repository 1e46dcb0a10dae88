// Copyright 2024 The Bramble Authors
// This file is part of the bramble library.
//
// The bramble library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The bramble library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Package xlog is the node's logging facade: a thin, key-value
// wrapper over log/slog, in the shape of the teacher's own logging
// package (New(...) returns a child Logger carrying fixed context;
// Debug/Info/Warn/Error/Crit take a message plus alternating
// key-value pairs). Handler selection (JSON for a pipe, file or
// buffer, slog's text handler for a terminal) is decided when New
// builds a root logger, via go-isatty.
package xlog

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Logger is the facade every package in this module logs through.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs at error level and terminates the process. Reserved
	// for programmer-error conditions; intake.Router does not use it
	// and returns leadership-apply failures to its caller instead.
	Crit(msg string, ctx ...any)
	// New returns a child logger that prefixes every record with ctx.
	New(ctx ...any) Logger
}

type logger struct {
	inner *slog.Logger
}

// New constructs a root Logger at level, writing to w (os.Stderr if
// nil). ctx, if given, are attached to every record the root logger
// (and its children) emit.
func New(level slog.Level, w io.Writer, ctx ...any) Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	if len(ctx) > 0 {
		l = l.With(ctx...)
	}
	return &logger{inner: l}
}

func (l *logger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.inner.Error(msg, ctx...)
	os.Exit(1)
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{inner: l.inner.With(ctx...)}
}

// Nop is a Logger that discards everything, useful as a default in
// tests that do not care about log output.
var Nop Logger = &logger{inner: slog.New(slog.NewTextHandler(io.Discard, nil))}

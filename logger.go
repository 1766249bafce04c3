// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/rc2d/internal/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for rc2d and all its sub-packages.
// By default, rc2d produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by rc2d:
//   - [slog.LevelDebug]: per-frame diagnostics (pass count, ray outcomes, timing)
//   - [slog.LevelInfo]: lifecycle events (executor selected, GPU pipeline ready)
//   - [slog.LevelWarn]: non-fatal issues (CPU fallback, resource release errors)
//
// Example:
//
//	rc2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)

	devicesMu.Lock()
	defer devicesMu.Unlock()
	for _, d := range devices {
		d.SetLogger(l)
	}
}

// Logger returns the current logger used by rc2d.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by GPU devices that accept a logger, such as
// backend/native.Device.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// devices are the loggerSetter devices of open Lightings, keyed by a
// registration token.
var (
	devicesMu  sync.Mutex
	devices    = make(map[uint64]loggerSetter)
	nextDevice uint64
)

// attachLogger passes the current logger to dev if it accepts one and keeps
// it updated until the returned func is called.
func attachLogger(dev any) (detach func()) {
	ls, ok := dev.(loggerSetter)
	if !ok {
		return func() {}
	}
	ls.SetLogger(Logger())

	devicesMu.Lock()
	nextDevice++
	token := nextDevice
	devices[token] = ls
	devicesMu.Unlock()

	return func() {
		devicesMu.Lock()
		delete(devices, token)
		devicesMu.Unlock()
	}
}

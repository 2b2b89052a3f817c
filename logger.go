package shadercross

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/shadercross/backend"
	"github.com/gogpu/shadercross/frontend"
)

// nopHandler is a slog.Handler that discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for shadercross and its frontend and
// backend packages. By default nothing is logged.
//
// Pipeline steps and tool command lines are logged at [slog.LevelDebug],
// recoverable oddities such as an unknown shader model at [slog.LevelWarn].
//
// Pass nil to disable logging. SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	frontend.SetLogger(l)
	backend.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func slogger() *slog.Logger { return loggerPtr.Load() }

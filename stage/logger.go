package stage

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records; Enabled returns false so
// callers skip message formatting entirely when logging is disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used for shader-compile failures and
// stage-bypass notices. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }

// onceLogger dedupes a FragmentStage's warning/error logs to at most one
// record per category per shader generation (one Init call). Without this a
// stage whose pipeline failed to compile, or whose bind group creation keeps
// failing, would otherwise log on every single Encode call for as long as
// the renderer keeps drawing frames.
type onceLogger struct {
	compileLogged atomic.Bool
	bypassLogged  atomic.Bool
	encodeLogged  atomic.Bool
}

// reset clears all three flags, marking the start of a new shader
// generation. Call this at the top of Init.
func (o *onceLogger) reset() {
	o.compileLogged.Store(false)
	o.bypassLogged.Store(false)
	o.encodeLogged.Store(false)
}

func (o *onceLogger) logCompileFailure(stage string, err error) {
	if o.compileLogged.CompareAndSwap(false, true) {
		logger().Error("stage shader compile failed", "stage", stage, "error", err)
	}
}

func (o *onceLogger) logBypass(stage string) {
	if o.bypassLogged.CompareAndSwap(false, true) {
		logger().Warn("stage bypassed, pipeline unavailable", "stage", stage)
	}
}

func (o *onceLogger) logEncodeFailure(stage string, err error) {
	if o.encodeLogged.CompareAndSwap(false, true) {
		logger().Error("stage bind group creation failed", "stage", stage, "error", err)
	}
}

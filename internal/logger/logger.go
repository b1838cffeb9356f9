// Package logger holds the process-wide zap logger shared by the backend,
// the boundary layer and the command-line tools.
//
// The logger starts as a no-op so library callers that never configure
// logging pay nothing and never see output. Hosts and commands install a
// real logger with Set.
package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// L returns the current global logger.
func L() *zap.Logger {
	return global.Load()
}

// Named returns a child of the global logger scoped to a component.
// The child is resolved at call time, so it follows later calls to Set.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Set replaces the global logger and returns a function restoring the
// previous one. A nil logger installs a no-op logger.
func Set(l *zap.Logger) (restore func()) {
	if l == nil {
		l = zap.NewNop()
	}
	prev := global.Swap(l)
	return func() { global.Store(prev) }
}

// New builds a logger at the given level for command-line use. Development
// mode writes human-readable console output; otherwise JSON.
func New(development bool, level zapcore.Level) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

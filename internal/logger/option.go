package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore overrides the minimum level of the wrapped core.
type levelCore struct {
	zapcore.Core

	min zapcore.Level
}

// Enabled reports whether l reaches the overridden minimum.
func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.min.Enabled(l)
}

// Check adds the core to ce when the entry reaches the minimum.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

// With keeps the override on derived cores.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), min: c.min}
}

// WithLevel returns an option replacing the minimum level of a logger.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, min: lvl}
	})
}

// WithMinLevel scopes the logger in ctx to messages at lvl and above.
// Short-lived commands use it to keep their output free of progress logs.
func WithMinLevel(ctx context.Context, lvl zapcore.Level) context.Context {
	return ToContext(ctx, FromContext(ctx).WithOptions(WithLevel(lvl)))
}

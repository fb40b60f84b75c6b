package logger

import "context"

// The helpers below log through the logger stored in ctx, or the global one.
// The plain form joins args like fmt.Sprint, the f form formats, and the KV
// form attaches alternating key-value pairs to message.

// Debug logs at debug level.
func Debug(ctx context.Context, args ...any) { FromContext(ctx).Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) { FromContext(ctx).Debugf(format, args...) }

// DebugKV logs message with key-value pairs at debug level.
func DebugKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Debugw(message, kvs...) }

// Info logs at info level.
func Info(ctx context.Context, args ...any) { FromContext(ctx).Info(args...) }

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) { FromContext(ctx).Infof(format, args...) }

// InfoKV logs message with key-value pairs at info level.
func InfoKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Infow(message, kvs...) }

// Warn logs at warn level.
func Warn(ctx context.Context, args ...any) { FromContext(ctx).Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) { FromContext(ctx).Warnf(format, args...) }

// WarnKV logs message with key-value pairs at warn level.
func WarnKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Warnw(message, kvs...) }

// Error logs at error level.
func Error(ctx context.Context, args ...any) { FromContext(ctx).Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) { FromContext(ctx).Errorf(format, args...) }

// ErrorKV logs message with key-value pairs at error level.
func ErrorKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Errorw(message, kvs...) }

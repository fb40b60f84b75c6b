package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that named loggers travel through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := NewWithWriter(&buf, zapcore.DebugLevel)
	ctx := ToContext(context.Background(), base)
	ctx = WithName(ctx, "engine")
	ctx = WithKV(ctx, "mode", "local")
	ctx = WithFields(ctx, map[string]any{"alarm_id": "alarm_1"})

	InfoKV(ctx, "Alarm fired", "label", "Wake")

	out := buf.String()
	require.Contains(t, out, "engine")
	require.Contains(t, out, "Alarm fired")
	require.Contains(t, out, "local")
	require.Contains(t, out, "alarm_1")
	require.Contains(t, out, "Wake")

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel ensures the level option filters messages below the threshold.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zapcore.DebugLevel, WithLevel(zapcore.WarnLevel))
	ctx := ToContext(context.Background(), l)

	Info(ctx, "hidden")
	Warn(ctx, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

// TestWithMinLevel scopes the level to the derived context only.
func TestWithMinLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := ToContext(context.Background(), NewWithWriter(&buf, zapcore.DebugLevel))
	quiet := WithKV(WithMinLevel(base, zapcore.ErrorLevel), "command", "list")

	Warn(quiet, "suppressed")
	Error(quiet, "reported")
	Debug(base, "verbose")

	require.NotContains(t, buf.String(), "suppressed")
	require.Contains(t, buf.String(), "reported")
	require.Contains(t, buf.String(), "verbose")
}

// TestNewWithFile writes through the rotating sink.
func TestNewWithFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm.log")
	l := NewWithFile(path, zapcore.InfoLevel)
	l.Info("persisted line")
	_ = l.Sync()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "persisted line")
}

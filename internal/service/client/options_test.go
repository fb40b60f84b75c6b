package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// TestLoadSettings_LogFileReceivesClientLines checks the returned context logs to the configured file.
func TestLoadSettings_LogFileReceivesClientLines(t *testing.T) {
	prevLogger, prevLevel := logger.Logger(), logger.Level()
	t.Cleanup(func() {
		logger.SetLogger(prevLogger)
		logger.SetLevel(prevLevel)
	})

	dir := t.TempDir()
	logPath := filepath.Join(dir, "client.log")
	configPath := filepath.Join(dir, "settings.yaml")

	settings := "http_address: 127.0.0.1:8080\nlog_file: " + logPath + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(settings), 0o600))

	ctx, cfg, err := loadSettings(context.Background(), &Options{ConfigPath: configPath}, true)
	require.NoError(t, err)
	require.Equal(t, logPath, cfg.LogFile)

	logger.Info(ctx, "hidden progress line")
	logger.Warn(ctx, "visible warning line")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "alarm-client")
	require.Contains(t, string(contents), "visible warning line")
	require.NotContains(t, string(contents), "hidden progress line")
}

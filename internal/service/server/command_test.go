package server

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// TestResolveListenAddress covers overrides and port extraction.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configAddr string
		override   string
		want       string
		wantErr    bool
	}{
		{name: "override wins", configAddr: "example.com:8080", override: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "port from config", configAddr: "example.com:8080", want: ":8080"},
		{name: "missing", wantErr: true},
		{name: "malformed", configAddr: "example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveListenAddress(tt.configAddr, tt.override)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestResolveOptionalAddress treats a missing address as a disabled listener.
func TestResolveOptionalAddress(t *testing.T) {
	t.Parallel()

	got, err := resolveOptionalAddress("", "")
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = resolveOptionalAddress("bad", "")
	require.Error(t, err)
}

// TestServe_StopsOnCancel starts both listeners on ephemeral ports and stops them.
func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, testNow)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- serve(ctx, s, "127.0.0.1:0", "127.0.0.1:0")
	}()

	time.AfterFunc(100*time.Millisecond, cancel)
	require.NoError(t, <-done)
}

// TestServe_ReleasesGRPCWhenRESTListenFails stops the running gRPC server when
// the REST address is taken.
func TestServe_ReleasesGRPCWhenRESTListenFails(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, testNow)

	var lc net.ListenConfig

	taken, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer taken.Close()

	free, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcAddress := free.Addr().String()
	require.NoError(t, free.Close())

	err = serve(t.Context(), s, grpcAddress, taken.Addr().String())
	require.ErrorContains(t, err, "listen on "+taken.Addr().String())

	again, err := lc.Listen(t.Context(), "tcp", grpcAddress)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

// TestConfigureLogging_NamedLoggerWritesToLogFile covers a log file set without a level.
func TestConfigureLogging_NamedLoggerWritesToLogFile(t *testing.T) {
	prevLogger, prevLevel := logger.Logger(), logger.Level()
	t.Cleanup(func() {
		logger.SetLogger(prevLogger)
		logger.SetLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "server.log")

	ctx := configureLogging(context.Background(), &config.Config{LogFile: path}, "")
	logger.Warn(ctx, "engine line through the named context")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "alarm-server")
	require.Contains(t, string(contents), "engine line through the named context")
}

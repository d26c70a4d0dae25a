package logging

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// Verify implementations satisfy the pgasync.Logger interface at compile time
var (
	_ pgasync.Logger = (*ConsoleLogger)(nil)
	_ pgasync.Logger = (*NullLogger)(nil)
	_ pgasync.Logger = (*ZapLogger)(nil)
)

// captureStderr runs fn with stderr redirected to a pipe and returns the output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestConsoleLogger_Verbose(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		out := captureStderr(t, func() {
			NewConsoleLogger(true).Verbose("job %d started", 7)
		})
		assert.Equal(t, "[VERBOSE] job 7 started\n", out)
	})

	t.Run("disabled", func(t *testing.T) {
		out := captureStderr(t, func() {
			NewConsoleLogger(false).Verbose("job %d started", 7)
		})
		assert.Empty(t, out)
	})
}

func TestConsoleLogger_InfoAndError(t *testing.T) {
	out := captureStderr(t, func() {
		logger := NewConsoleLogger(false)
		logger.Info("connected to %s", "localhost")
		logger.Error("query failed: %v", "timeout")
	})
	assert.Contains(t, out, "connected to localhost\n")
	assert.Contains(t, out, "[ERROR] query failed: timeout\n")
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	out := captureStderr(t, func() {
		logger := NewNullLogger()
		logger.Verbose("v")
		logger.Info("i")
		logger.Error("e")
	})
	assert.Empty(t, out)
}

func TestZapLogger_LevelMapping(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Verbose("dispatching job %d", 1)
	logger.Info("pool ready")
	logger.Error("checkout failed")

	entries := observed.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "dispatching job 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

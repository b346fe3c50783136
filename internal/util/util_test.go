package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTruncateStringCountsRunes(t *testing.T) {
	assert.Equal(t, "马拉松", TruncateString("马拉松", 3))
	assert.Equal(t, "马拉...", TruncateString("马拉松", 2))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" marathon "))
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewLogger("debug", path)
	require.NoError(t, err)
	logger.Debug("hello", zap.String("k", "v"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG | ")
	assert.Contains(t, string(data), "hello")
}

func TestConsoleLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(zapcore.AddSync(&buf), zapcore.WarnLevel)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.False(t, strings.Contains(out, "quiet"))
	assert.Contains(t, out, "WARN | ")
}

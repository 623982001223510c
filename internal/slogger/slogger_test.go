package slogger

import (
	"bytes"
	"context"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, charmlog.WarnLevel, Level(0))
	assert.Equal(t, charmlog.InfoLevel, Level(1))
	assert.Equal(t, charmlog.DebugLevel, Level(2))
	assert.Equal(t, charmlog.DebugLevel, Level(5))
}

func TestNew(t *testing.T) {
	t.Run("default verbosity shows warnings only", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Output: &buf})

		logger.Info("installing")
		logger.Warn("version drift", "package", "demo")

		out := buf.String()
		assert.NotContains(t, out, "installing")
		assert.Contains(t, out, "version drift")
		assert.Contains(t, out, "package=demo")
	})

	t.Run("debug verbosity shows debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Output: &buf, Verbosity: 2})

		logger.Debug("running command")

		assert.Contains(t, buf.String(), "running command")
	})
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Output: &buf})
		ctx := WithLogger(context.Background(), logger)

		assert.Same(t, logger, L(ctx))
	})

	t.Run("falls back to discarding logger", func(t *testing.T) {
		logger := FromContext(context.Background())

		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(context.Background(), 12))
	})
}

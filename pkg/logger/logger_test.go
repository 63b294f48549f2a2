package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gthulhu/schedsim/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	var console bytes.Buffer

	_, closeLog, err := InitLoggerWithConfig(config.LoggingConfig{Level: "warn", Console: true, FilePath: path}, &console)
	require.NoError(t, err)
	t.Cleanup(func() { InitLogger() })

	ctx := context.Background()
	Logger(ctx).Info().Msg("dropped")
	Logger(ctx).Warn().Msg("kept")
	require.NoError(t, closeLog())
	assert.Error(t, closeLog(), "file is already closed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, console.String(), "kept")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestInitLoggerWithConfigBadLevel(t *testing.T) {
	_, closeLog, err := InitLoggerWithConfig(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, closeLog)
}

func TestInitLoggerWithConfigConsoleOnlyCloser(t *testing.T) {
	var console bytes.Buffer
	_, closeLog, err := InitLoggerWithConfig(config.LoggingConfig{Level: "info", Console: true}, &console)
	require.NoError(t, err)
	t.Cleanup(func() { InitLogger() })
	assert.NoError(t, closeLog())
	assert.NoError(t, closeLog())
}

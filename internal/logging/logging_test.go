package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.name))
		})
	}
}

func TestNewFile_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tgift.log")

	logger, closer := NewFile(path, "info")
	probeLogger := Component(logger, "probe")
	probeLogger.Info().Msg("hello")
	logger.Debug().Msg("filtered")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"probe"`)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.NotContains(t, string(data), "filtered")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, "warn")

	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

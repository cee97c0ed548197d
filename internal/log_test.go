package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR":  LogLevelError,
		"warn":   LogLevelWarn,
		"Info":   LogLevelInfo,
		"debug":  LogLevelDebug,
		" TRACE": LogLevelTrace,
		"":       LogLevelInfo,
		"LOUD":   LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestLogger_LevelFilteringAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelInfo).With("Loader")

	logger.Debug("hidden %d", 1)
	logger.Info("loaded %d rows", 768)
	logger.Warn("odd header")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] [Loader] loaded 768 rows")
	assert.Contains(t, out, "[WARN] [Loader] odd header")
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}

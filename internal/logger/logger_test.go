package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))

			Init(tt.level, false)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", false)

	Info().Str("operation", "fetch_task").Int("status", 200).Msg("request completed")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "fetch_task", entry["operation"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "request completed", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestInitWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", true)

	Info().Msg("listening")

	out := buf.String()
	assert.Contains(t, out, "listening")
	assert.False(t, strings.HasPrefix(out, "{"), "console output is not JSON")
}

func TestScopedLoggers(t *testing.T) {
	tests := []struct {
		name  string
		build func() zerolog.Logger
		key   string
		value string
	}{
		{"component", func() zerolog.Logger { return WithComponent("mockapi") }, "component", "mockapi"},
		{"task", func() zerolog.Logger { return WithTask("5774cc78b01249ab09f089dd") }, "task_id", "5774cc78b01249ab09f089dd"},
		{"batch", func() zerolog.Logger { return WithBatch("kitti-2024-06") }, "batch", "kitti-2024-06"},
		{"request", func() zerolog.Logger { return WithRequestID("req-789") }, "request_id", "req-789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitWriter(&buf, "info", false)

			l := tt.build()
			l.Info().Msg("scoped")

			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.value, entry[tt.key])
			assert.Equal(t, "scoped", entry["message"])
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", false)

	Debug().Msg("debug message")
	Info().Msg("info message")
	assert.Empty(t, buf.String())

	Warn().Msg("warn message")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	Error().Msg("error message")
	assert.Contains(t, buf.String(), "error message")
}

func TestGet(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", false)

	Get().Debug().Msg("via get")
	assert.Contains(t, buf.String(), "via get")
}

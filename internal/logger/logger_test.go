package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	_, err := New(NewDefaultFileLogConfig())
	require.NoError(t, err)
}

func TestLoggerBuilder_JSONOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewDefaultFileLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	l, err := NewLoggerBuilder().WithConfig(cfg).WithConsoleOutput(&buf).Build()
	require.NoError(t, err)

	zl := l.GetZerolog()
	zl.Info().Msg("hidden")
	zl.Warn().Str("component", "TextDiffer").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "TextDiffer", entry["component"])
	assert.Equal(t, zerolog.WarnLevel, l.Config().Level)
}

func TestLoggerBuilder_FileOutputPerComparison(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultFileLogConfig()
	cfg.LogFile = filepath.Join(dir, "pdfdiff.log")
	cfg.LogFormat = "json"

	l, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithComparisonID("cmp-1").
		WithConsoleOutput(&bytes.Buffer{}).
		Build()
	require.NoError(t, err)

	l.GetZerolog().Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "comparisons", "cmp-1", "pdfdiff.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLoggerBuilder_ValidatesConfig(t *testing.T) {
	b := NewLoggerBuilder()
	b.config.MaxSizeMB = 0
	_, err := b.Build()
	assert.Error(t, err)

	b = NewLoggerBuilder()
	b.config.EnableConsole = false
	_, err = b.Build()
	assert.Error(t, err)
}

func TestParsers(t *testing.T) {
	levelParser := NewLogLevelParser()
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{input: "", expected: zerolog.InfoLevel},
		{input: "DEBUG", expected: zerolog.DebugLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "loud", expected: zerolog.InfoLevel, wantErr: true},
	}
	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			level, err := levelParser.ParseLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}

	formatParser := NewLogFormatParser()
	assert.Equal(t, FormatJSON, formatParser.ParseFormat("JSON"))
	assert.Equal(t, FormatText, formatParser.ParseFormat("text"))
	assert.Equal(t, FormatConsole, formatParser.ParseFormat("anything"))
	assert.Equal(t, "text", FormatText.String())
}

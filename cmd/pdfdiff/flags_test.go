package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected AppFlags
		wantErr  bool
	}{
		{
			name:     "named files",
			args:     []string{"-a", "old.pdf", "-b", "new.pdf"},
			expected: AppFlags{FileA: "old.pdf", FileB: "new.pdf"},
		},
		{
			name:     "positional files and aliases",
			args:     []string{"-c", "cfg.yaml", "-o", "out.html", "-pro", "old.pdf", "new.pdf"},
			expected: AppFlags{FileA: "old.pdf", FileB: "new.pdf", GlobalConfigFile: "cfg.yaml", HTMLOutput: "out.html", Pro: true},
		},
		{
			name:     "long names win over aliases",
			args:     []string{"-config", "a.yaml", "-c", "b.yaml", "-out", "x.html", "-o", "y.html", "a.pdf", "b.pdf"},
			expected: AppFlags{FileA: "a.pdf", FileB: "b.pdf", GlobalConfigFile: "a.yaml", HTMLOutput: "x.html"},
		},
		{
			name:     "list history needs no files",
			args:     []string{"-list-history", "5"},
			expected: AppFlags{ListHistory: 5},
		},
		{
			name:     "side-by-side output",
			args:     []string{"-side-by-side", "pairs.pdf", "-max-pages", "4", "a.pdf", "b.pdf"},
			expected: AppFlags{FileA: "a.pdf", FileB: "b.pdf", SideBySide: "pairs.pdf", MaxPages: 4},
		},
		{name: "negative max pages", args: []string{"-max-pages", "-2", "a.pdf", "b.pdf"}, wantErr: true},
		{name: "missing second file", args: []string{"old.pdf"}, wantErr: true},
		{name: "too many files", args: []string{"a.pdf", "b.pdf", "c.pdf"}, wantErr: true},
		{name: "negative history", args: []string{"-list-history", "-1"}, wantErr: true},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseFlags(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flags)
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags([]string{"-h"}, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, out.String(), "-side-by-side")
	assert.Equal(t, 0, parseExitCode(err))

	_, err = ParseFlags([]string{"-nope"}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, 2, parseExitCode(err))

	_, err = ParseFlags([]string{"only.pdf"}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, 2, parseExitCode(err))
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	applyFlagOverrides(cfg, AppFlags{LogLevel: "debug", Pro: true, History: true, CellDiffExport: true, MaxPages: 3})

	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.True(t, cfg.ProConfig.Enabled)
	assert.True(t, cfg.StorageConfig.EnableHistory)
	assert.True(t, cfg.StorageConfig.EnableCellDiffExport)
	assert.Equal(t, 3, cfg.VisualConfig.MaxPages)
}

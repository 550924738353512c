package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("info", "json", &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("saved", "subject", "math")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "saved", line["msg"])
	assert.Equal(t, "math", line["subject"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "text", &buf)
	require.NoError(t, err)

	l.Debug("loaded", "items", 3)
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "items=3")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kidlearn.log")
	l, closeFn, err := Open("info", "text", path, nil)
	require.NoError(t, err)

	l.Warn("store unavailable")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "store unavailable")
}

func TestOpenDiscard(t *testing.T) {
	l, closeFn, err := Open("info", "text", "", nil)
	require.NoError(t, err)
	l.Error("nobody hears this")
	assert.NoError(t, closeFn())
}

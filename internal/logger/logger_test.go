package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flightprice/backend/internal/config"
)

func TestZapAdapterFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := wrap(zap.New(core))

	log.WithFields(map[string]interface{}{"field": "stops"}).
		WithError(errors.New("boom")).
		Warn("encoder fallback", map[string]interface{}{"label": "unknown_value"})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "encoder fallback", entries[0].Message)
	assert.Equal(t, "stops", ctx["field"])
	assert.Equal(t, "unknown_value", ctx["label"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNewRespectsLevel(t *testing.T) {
	l := New(config.LoggingConfig{Level: "warn", Format: "json", Output: "stderr"})
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestNewStructuredWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	log := NewStructured(config.LoggingConfig{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})

	log.Info("bundle loaded", map[string]interface{}{"features": 10})
	log.Debug("dropped", nil)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "bundle loaded", entry["msg"])
	assert.Equal(t, float64(10), entry["features"])
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Error("ignored", map[string]interface{}{"k": "v"})
	assert.NotNil(t, log.WithFields(nil))
}

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	assert.NoError(t, valid.Validate())

	badLevel := Config{Level: "loud", Format: FormatConsole}
	assert.Error(t, badLevel.Validate())

	badFormat := Config{Level: "debug", Format: "xml"}
	assert.Error(t, badFormat.Validate())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "info", Format: FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Processed block", zap.Int("height", 7))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Processed block", entry["msg"])
	assert.Equal(t, float64(7), entry["height"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.log")
	logger, closeFn, err := New(Config{Level: "debug", Format: FormatConsole, Output: path})
	require.NoError(t, err)

	logger.Debug("written to file")
	require.NoError(t, logger.Sync())
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

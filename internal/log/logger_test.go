package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInfoIncludesRunIDAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, zerolog.InfoLevel, "run-abc")

	logger.Info("admission allowed", "uid", "req-1", "warnings", 0)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "admission allowed", decoded["message"])
	assert.Equal(t, "run-abc", decoded["run_id"])
	assert.Equal(t, "req-1", decoded["uid"])
}

func TestLoggerDebugSuppressedBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, zerolog.InfoLevel, "run-abc")

	logger.Debug("should not appear")

	assert.Empty(t, buf.String())
}

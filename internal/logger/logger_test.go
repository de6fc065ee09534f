package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).With(String("component", "collector"))

	l.Info("fetched bars",
		String("symbol", "AAPL"),
		Int("bars", 30),
		Float("close", 189.5),
		Bool("cached", false),
		Duration("latency", 250*time.Millisecond),
		Error(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "fetched bars", entry["message"])
	assert.Equal(t, "collector", entry["component"])
	assert.Equal(t, "AAPL", entry["symbol"])
	assert.Equal(t, float64(30), entry["bars"])
	assert.Equal(t, 189.5, entry["close"])
	assert.Equal(t, false, entry["cached"])
	assert.Equal(t, float64(250), entry["latency"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_LevelFilters(t *testing.T) {
	l, err := New(&Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored", String("k", "v")) })
}

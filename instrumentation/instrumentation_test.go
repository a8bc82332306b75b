package instrumentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger(t *testing.T) {
	t.Run("When logging through a zerolog logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewZerologLogger(zerolog.New(buf).Level(zerolog.InfoLevel))

		logger.Debug("scheduler", "hidden")
		logger.Warn("Throttle", "pending value dropped")

		t.Run("Then messages below the level should be filtered", func(t *testing.T) {
			assert.NotContains(t, buf.String(), "hidden")
		})

		t.Run("Then the activity should be a structured field", func(t *testing.T) {
			entry := map[string]string{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "warn", entry["level"])
			assert.Equal(t, "Throttle", entry["activity"])
			assert.Equal(t, "pending value dropped", entry["message"])
		})
	})
}

func TestProviders(t *testing.T) {
	t.Run("When replacing the process wide providers", func(t *testing.T) {
		measurer := NewCountingMeasurer()
		SetMeasurer(measurer)
		defer SetMeasurer(&NilMeasurer{})

		Metrics().Incr("Sample", "value_emitted", 1)
		Metrics().Incr("Sample", "value_emitted", 2)

		t.Run("Then the new measurer should receive the metrics", func(t *testing.T) {
			assert.Equal(t, float64(3), measurer.Count("Sample", "value_emitted"))
			assert.Equal(t, float64(0), measurer.Count("Throttle", "value_emitted"))
		})
	})

	t.Run("When setting a nil provider", func(t *testing.T) {
		t.Run("Then it should panic", func(t *testing.T) {
			assert.Panics(t, func() { SetLogger(nil) })
			assert.Panics(t, func() { SetMeasurer(nil) })
		})
	})
}

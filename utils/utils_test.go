package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinedContexts(t *testing.T) {
	t.Run("When one of the combined contexts is cancelled", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(context.Background())
		other := context.Background()

		ctx, cancel := CombinedContexts(parent, other)
		defer cancel()

		cancelParent()

		t.Run("Then the combined context should be done", func(t *testing.T) {
			<-ctx.Done()
			assert.Error(t, ctx.Err())
		})
	})
}

func TestValues(t *testing.T) {
	t.Run("When falling back from a nil pointer", func(t *testing.T) {
		t.Run("Then the fallback should be returned", func(t *testing.T) {
			assert.Equal(t, 7, ValueOrFallback(nil, 7))
			assert.Equal(t, 3, ValueOrFallback(ToPtr(3), 7))
		})
	})

	t.Run("When round tripping through the JSON marshaller", func(t *testing.T) {
		m := NewJsonMarshaller()
		type point struct{ X, Y int }

		s, err := m.Serialize(point{1, 2})
		assert.NoError(t, err)

		var out point
		assert.NoError(t, m.Deserialize(s, &out))

		t.Run("Then the value should survive", func(t *testing.T) {
			assert.Equal(t, point{1, 2}, out)
		})
	})
}

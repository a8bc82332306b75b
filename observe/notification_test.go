package observe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotification(t *testing.T) {
	t.Run("When creating a Next notification", func(t *testing.T) {
		n := Next(42)

		t.Run("Then it should carry the value and not be terminal", func(t *testing.T) {
			assert.Equal(t, NextKind, n.Kind())
			assert.Equal(t, 42, n.Value())
			assert.NoError(t, n.Err())
			assert.False(t, n.IsTerminal())
			assert.Equal(t, "next(42)", n.String())
		})
	})

	t.Run("When creating an Error notification", func(t *testing.T) {
		err := errors.New("boom")
		n := Error[int](err)

		t.Run("Then it should carry the error and be terminal", func(t *testing.T) {
			assert.Equal(t, ErrorKind, n.Kind())
			assert.Equal(t, err, n.Err())
			assert.True(t, n.IsTerminal())
			assert.Equal(t, "error(boom)", n.String())
		})

		t.Run("Then a nil error should panic", func(t *testing.T) {
			assert.Panics(t, func() { Error[int](nil) })
		})
	})

	t.Run("When creating a Complete notification", func(t *testing.T) {
		n := Complete[string]()

		t.Run("Then it should be terminal", func(t *testing.T) {
			assert.Equal(t, CompleteKind, n.Kind())
			assert.True(t, n.IsTerminal())
			assert.Equal(t, "completed", n.String())
		})
	})

	t.Run("When comparing notifications", func(t *testing.T) {
		t.Run("Then equal kinds and payloads should be equal", func(t *testing.T) {
			assert.Equal(t, Next(1), Next(1))
			assert.NotEqual(t, Next(1), Next(2))
			assert.Equal(t, Complete[int](), Complete[int]())
			assert.NotEqual(t, Next(0), Complete[int]())
		})
	})

	t.Run("When dispatching notifications", func(t *testing.T) {
		calls := make([]string, 0)
		dispatch := func(n Notification[int]) {
			Dispatch(
				n,
				func(v int) { calls = append(calls, "next") },
				func(err error) { calls = append(calls, "error") },
				func() { calls = append(calls, "complete") },
			)
		}

		dispatch(Next(1))
		dispatch(Error[int](errors.New("boom")))
		dispatch(Complete[int]())

		t.Run("Then each kind should reach its own callback", func(t *testing.T) {
			assert.Equal(t, []string{"next", "error", "complete"}, calls)
		})

		t.Run("Then an unknown kind should panic", func(t *testing.T) {
			assert.Panics(t, func() {
				dispatch(&notification[int]{kind: "Bogus"})
			})
		})
	})
}

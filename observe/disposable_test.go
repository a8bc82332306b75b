package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisposables(t *testing.T) {
	t.Run("When disposing an ActionDisposable twice", func(t *testing.T) {
		count := 0
		d := NewDisposable(func() { count++ })

		d.Dispose()
		d.Dispose()

		t.Run("Then the action should run once", func(t *testing.T) {
			assert.Equal(t, 1, count)
			assert.True(t, d.IsDisposed())
		})
	})

	t.Run("When disposing a CompositeDisposable", func(t *testing.T) {
		order := make([]string, 0)
		c := NewCompositeDisposable(
			NewDisposable(func() { order = append(order, "a") }),
			NewDisposable(func() { order = append(order, "b") }),
		)
		c.Add(nil)

		c.Dispose()

		t.Run("Then every item should be disposed in order", func(t *testing.T) {
			assert.Equal(t, []string{"a", "b"}, order)
			assert.True(t, c.IsDisposed())
		})

		t.Run("Then items added afterwards should be disposed immediately", func(t *testing.T) {
			late := NewDisposable(func() { order = append(order, "late") })
			c.Add(late)

			assert.True(t, late.IsDisposed())
			assert.Equal(t, []string{"a", "b", "late"}, order)
		})

		t.Run("Then disposing again should be a no-op", func(t *testing.T) {
			c.Dispose()
			assert.Equal(t, []string{"a", "b", "late"}, order)
		})
	})

	t.Run("When replacing the content of a SerialDisposable", func(t *testing.T) {
		s := NewSerialDisposable()
		first := NewDisposable(func() {})
		second := NewDisposable(func() {})

		s.Set(first)
		s.Set(second)

		t.Run("Then the previous item should be disposed", func(t *testing.T) {
			assert.True(t, first.IsDisposed())
			assert.False(t, second.IsDisposed())
		})

		s.Dispose()

		t.Run("Then disposing the serial should dispose the current item", func(t *testing.T) {
			assert.True(t, second.IsDisposed())
			assert.True(t, s.IsDisposed())
		})

		t.Run("Then setting after dispose should dispose the new item immediately", func(t *testing.T) {
			third := NewDisposable(func() {})
			s.Set(third)
			assert.True(t, third.IsDisposed())
		})
	})
}

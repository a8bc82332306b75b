package store

import (
	"context"
	"testing"
	"time"

	"github.com/ducka/go-marbles/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestInMemoryStoreTestSuite(t *testing.T) {
	testSuite := NewStoreTestSuite(func() StateStore[string] {
		return NewInMemoryStore[string]()
	})
	suite.Run(t, testSuite)
}

func TestInMemoryStore(t *testing.T) {
	t.Run("When an entry outlives its expiry", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		sut := NewInMemoryStore[int]()
		sut.now = func() time.Time { return now }

		err := sut.Set(context.Background(), []StateEntry[int]{{Key: "k", State: utils.ToPtr(1)}}, WithExpiry(time.Minute))
		assert.NoError(t, err)

		now = now.Add(time.Minute)

		t.Run("Then it should no longer be returned", func(t *testing.T) {
			g, err := sut.Get(context.Background(), "k")
			assert.NoError(t, err)
			assert.Empty(t, g)
		})

		t.Run("Then it can be written again as a new entry", func(t *testing.T) {
			err := sut.Set(context.Background(), []StateEntry[int]{{Key: "k", State: utils.ToPtr(2)}})
			assert.NoError(t, err)
		})
	})

	t.Run("When writing twice on the same clock reading", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		sut := NewInMemoryStore[int]()
		sut.now = func() time.Time { return now }
		ctx := context.Background()

		assert.NoError(t, sut.Set(ctx, []StateEntry[int]{{Key: "k", State: utils.ToPtr(1)}}))
		first, _ := sut.Get(ctx, "k")
		assert.NoError(t, sut.Set(ctx, []StateEntry[int]{{Key: "k", State: utils.ToPtr(2), Timestamp: first[0].Timestamp}}))
		second, _ := sut.Get(ctx, "k")

		t.Run("Then the timestamps should still differ", func(t *testing.T) {
			assert.Greater(t, *second[0].Timestamp, *first[0].Timestamp)
		})
	})
}

package store

import (
	"context"
	"time"

	"github.com/ducka/go-marbles/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	createSUT func() StateStore[string]
}

func NewStoreTestSuite(storeFactory func() StateStore[string]) *StoreTestSuite {
	return &StoreTestSuite{
		createSUT: storeFactory,
		ctx:       context.Background(),
	}
}

func (t *StoreTestSuite) TestGettingAndSetting() {
	sut := t.createSUT()

	// Test getting a non-existent key
	result, err := sut.Get(t.ctx, uuid.NewString())

	t.NoError(err)
	t.Empty(result)

	// Test setting a new key
	newEntry := StateEntry[string]{
		Key:   uuid.NewString(),
		State: utils.ToPtr(uuid.NewString()),
	}

	t.NoError(sut.Set(t.ctx, []StateEntry[string]{newEntry}))

	// Test getting the new key
	g, err := sut.Get(t.ctx, newEntry.Key)
	t.NoError(err)
	t.Require().Len(g, 1)
	gotEntry := g[0]
	t.Equal(newEntry.Key, gotEntry.Key)
	t.Equal(newEntry.State, gotEntry.State)
	t.NotNil(gotEntry.Timestamp)

	// Test updating an existing key
	updatedEntry := StateEntry[string]{
		Key:       newEntry.Key,
		State:     utils.ToPtr(uuid.NewString()),
		Timestamp: gotEntry.Timestamp,
	}
	t.NoError(sut.Set(t.ctx, []StateEntry[string]{updatedEntry}))

	// Test getting the updated key
	g, err = sut.Get(t.ctx, updatedEntry.Key)
	t.NoError(err)
	t.Require().Len(g, 1)
	gotEntry = g[0]

	t.Equal(updatedEntry.State, gotEntry.State)
	t.NotEqual(*updatedEntry.Timestamp, *gotEntry.Timestamp)

	// Test deleting the key
	t.NoError(sut.Set(t.ctx, []StateEntry[string]{{
		Key:       updatedEntry.Key,
		State:     nil,
		Timestamp: gotEntry.Timestamp,
	}}))

	// Test getting the deleted key
	g, err = sut.Get(t.ctx, updatedEntry.Key)
	t.NoError(err)
	t.Empty(g)
}

func (t *StoreTestSuite) TestConflicts() {
	sut := t.createSUT()
	key := uuid.NewString()

	t.NoError(sut.Set(t.ctx, []StateEntry[string]{{Key: key, State: utils.ToPtr("first")}}))

	g, err := sut.Get(t.ctx, key)
	t.NoError(err)
	t.Require().Len(g, 1)
	read := g[0]

	// A concurrent writer updates the entry first
	t.NoError(sut.Set(t.ctx, []StateEntry[string]{{Key: key, State: utils.ToPtr("second"), Timestamp: read.Timestamp}}))

	// Writing with the stale timestamp is rejected
	err = sut.Set(t.ctx, []StateEntry[string]{{Key: key, State: utils.ToPtr("third"), Timestamp: read.Timestamp}})
	var conflict *StateStoreConflict
	t.Require().True(errors.As(err, &conflict))
	t.Equal([]string{key}, conflict.GetConflicts())

	// Writing a key as new when it already exists is rejected
	err = sut.Set(t.ctx, []StateEntry[string]{{Key: key, State: utils.ToPtr("fourth")}})
	t.Require().True(errors.As(err, &conflict))

	g, err = sut.Get(t.ctx, key)
	t.NoError(err)
	t.Require().Len(g, 1)
	t.Equal("second", *g[0].State)
}

func (t *StoreTestSuite) TestGettingSeveralKeys() {
	sut := t.createSUT()
	a, b, missing := uuid.NewString(), uuid.NewString(), uuid.NewString()

	t.NoError(sut.Set(t.ctx, []StateEntry[string]{
		{Key: a, State: utils.ToPtr("a")},
		{Key: b, State: utils.ToPtr("b")},
	}))

	g, err := sut.Get(t.ctx, a, missing, b)
	t.NoError(err)
	t.Require().Len(g, 2)
	t.Equal(a, g[0].Key)
	t.Equal(b, g[1].Key)
}

func (t *StoreTestSuite) TestExpiry() {
	sut := t.createSUT()
	key := uuid.NewString()

	t.NoError(sut.Set(t.ctx, []StateEntry[string]{{Key: key, State: utils.ToPtr("short lived")}}, WithExpiry(time.Second)))

	g, err := sut.Get(t.ctx, key)
	t.NoError(err)
	t.Len(g, 1)

	t.Eventually(func() bool {
		g, err := sut.Get(t.ctx, key)
		return err == nil && len(g) == 0
	}, 3*time.Second, 100*time.Millisecond)
}

package idalloc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "recipehub/internal/errors"
)

type takenSet map[int]bool

func (s takenSet) exists(_ context.Context, id int) (bool, error) {
	return s[id], nil
}

func TestAllocate_DistinctWithoutDeletes(t *testing.T) {
	a := New(1, 200, 10000)
	taken := takenSet{}

	for i := 0; i < 150; i++ {
		id, err := a.Allocate(context.Background(), taken.exists)
		require.NoError(t, err)
		assert.False(t, taken[id], "id %d handed out twice", id)
		assert.GreaterOrEqual(t, id, 1)
		assert.LessOrEqual(t, id, 200)
		taken[id] = true
	}
	assert.Len(t, taken, 150)
}

func TestAllocate_LastFreeID(t *testing.T) {
	a := New(1, 5, 100000)
	taken := takenSet{1: true, 2: true, 4: true, 5: true}

	id, err := a.Allocate(context.Background(), taken.exists)

	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestAllocate_Exhausted(t *testing.T) {
	a := New(1, 3, 50)
	taken := takenSet{1: true, 2: true, 3: true}

	_, err := a.Allocate(context.Background(), taken.exists)

	assert.ErrorIs(t, err, apperrors.ErrIDSpaceExhausted)
}

func TestAllocate_PredicateError(t *testing.T) {
	boom := errors.New("db down")
	a := New(1, 10, 10)

	_, err := a.Allocate(context.Background(), func(context.Context, int) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestAllocate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	_, err := New(1, 10, 10).Allocate(ctx, func(context.Context, int) (bool, error) {
		calls++
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestAllocate_InvalidRange(t *testing.T) {
	_, err := New(10, 1, 10).Allocate(context.Background(), takenSet{}.exists)

	assert.Error(t, err)
}

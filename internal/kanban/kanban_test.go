package kanban

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(orders ...int) []Item {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]Item, len(orders))
	for i, o := range orders {
		items[i] = Item{ID: uuid.New(), Order: o, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return items
}

func ids(items []Item) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestMoveSwapsWithNeighbour(t *testing.T) {
	col := column(0, 1, 2, 3)

	changes, err := Move(col, col[2].ID, Up)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.ElementsMatch(t, []Change{{ID: col[2].ID, Order: 1}, {ID: col[1].ID, Order: 2}}, changes)

	moved := Apply(col, changes)
	assert.Equal(t, []uuid.UUID{col[0].ID, col[2].ID, col[1].ID, col[3].ID}, ids(moved))
}

func TestMoveDownWithGaps(t *testing.T) {
	col := column(10, 20, 30)

	changes, err := Move(col, col[0].ID, Down)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Change{{ID: col[0].ID, Order: 20}, {ID: col[1].ID, Order: 10}}, changes)
}

func TestMoveEdgesAreNoOps(t *testing.T) {
	col := column(0, 1, 2)

	changes, err := Move(col, col[0].ID, Up)
	require.NoError(t, err)
	assert.Empty(t, changes)

	changes, err = Move(col, col[2].ID, Down)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMoveUsesSortedPosition(t *testing.T) {
	col := column(2, 0, 1)

	// col[1] holds order 0, it is first in the column.
	changes, err := Move(col, col[1].ID, Up)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMoveKeepsMembership(t *testing.T) {
	col := column(0, 1, 2, 3, 4)
	current := col
	for i := 0; i < 20; i++ {
		target := current[(i*7)%len(current)].ID
		dir := Up
		if i%3 == 0 {
			dir = Down
		}
		changes, err := Move(current, target, dir)
		require.NoError(t, err)
		current = Apply(current, changes)
		assert.ElementsMatch(t, ids(col), ids(current))
	}
}

func TestMoveRepairsDuplicateOrders(t *testing.T) {
	col := column(0, 1, 1, 2)

	changes, err := Move(col, col[2].ID, Up)
	require.NoError(t, err)

	moved := Apply(col, changes)
	assert.Equal(t, []uuid.UUID{col[0].ID, col[2].ID, col[1].ID, col[3].ID}, ids(moved))
	for i, it := range moved {
		assert.Equal(t, i, it.Order)
	}
}

func TestMoveErrors(t *testing.T) {
	col := column(0, 1)

	_, err := Move(col, uuid.New(), Up)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = Move(col, col[0].ID, Direction("left"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestSortTieBreaksOnCreatedAt(t *testing.T) {
	col := column(1, 1, 0)
	col[0].CreatedAt, col[1].CreatedAt = col[1].CreatedAt, col[0].CreatedAt

	Sort(col)
	assert.Equal(t, 0, col[0].Order)
	assert.True(t, col[1].CreatedAt.Before(col[2].CreatedAt))
}

func TestNextAndNormalize(t *testing.T) {
	assert.Equal(t, 0, Next(nil))

	col := column(3, 7, 7)
	assert.Equal(t, 8, Next(col))

	changes := Normalize(col)
	assert.ElementsMatch(t, []Change{
		{ID: col[0].ID, Order: 0},
		{ID: col[1].ID, Order: 1},
		{ID: col[2].ID, Order: 2},
	}, changes)
	assert.Empty(t, Normalize(Apply(col, changes)))
}

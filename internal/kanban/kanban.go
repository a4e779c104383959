// Package kanban assigns and repairs the integer order keys of items inside one
// status column.
package kanban

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound     = errors.New("item not found in column")
	ErrInvalidDirection = errors.New("direction must be up or down")
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func (d Direction) IsValid() bool {
	return d == Up || d == Down
}

type Item struct {
	ID        uuid.UUID
	Order     int
	CreatedAt time.Time
}

type Change struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// Sort orders items by (Order, CreatedAt). Duplicate orders left behind by a
// partially applied batch still produce a deterministic column.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func sorted(column []Item) []Item {
	out := make([]Item, len(column))
	copy(out, column)
	Sort(out)
	return out
}

// Next returns the order value that appends an item to the end of column.
func Next(column []Item) int {
	if len(column) == 0 {
		return 0
	}
	max := column[0].Order
	for _, it := range column[1:] {
		if it.Order > max {
			max = it.Order
		}
	}
	return max + 1
}

// Normalize renumbers the sorted column 0..n-1 and returns only the items
// whose order actually changes.
func Normalize(column []Item) []Change {
	var changes []Change
	for i, it := range sorted(column) {
		if it.Order != i {
			changes = append(changes, Change{ID: it.ID, Order: i})
		}
	}
	return changes
}

// Move swaps the order of id with its immediate neighbour in direction dir.
// Moving the first item up or the last item down returns no changes.
func Move(column []Item, id uuid.UUID, dir Direction) ([]Change, error) {
	if !dir.IsValid() {
		return nil, ErrInvalidDirection
	}

	items := sorted(column)
	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	neighbour := idx - 1
	if dir == Down {
		neighbour = idx + 1
	}
	if neighbour < 0 || neighbour >= len(items) {
		return nil, nil
	}

	if items[idx].Order != items[neighbour].Order {
		a, b := items[idx], items[neighbour]
		return []Change{
			{ID: a.ID, Order: b.Order},
			{ID: b.ID, Order: a.Order},
		}, nil
	}

	// Equal keys cannot be swapped: repair the whole column by position first.
	pending := make(map[uuid.UUID]int, len(items))
	for i, it := range items {
		pending[it.ID] = i
	}
	pending[items[idx].ID], pending[items[neighbour].ID] = neighbour, idx

	var changes []Change
	for _, it := range items {
		if pending[it.ID] != it.Order {
			changes = append(changes, Change{ID: it.ID, Order: pending[it.ID]})
		}
	}
	return changes, nil
}

// Apply returns a re-sorted copy of column with changes applied, for
// optimistic local display before the batch is confirmed.
func Apply(column []Item, changes []Change) []Item {
	byID := make(map[uuid.UUID]int, len(changes))
	for _, c := range changes {
		byID[c.ID] = c.Order
	}
	out := make([]Item, len(column))
	for i, it := range column {
		if o, ok := byID[it.ID]; ok {
			it.Order = o
		}
		out[i] = it
	}
	Sort(out)
	return out
}

package streak

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleThenUndo(t *testing.T) {
	c := Counter{Current: 3, Record: 5}

	c = c.Apply(true)
	assert.Equal(t, Counter{Current: 4, Record: 5}, c)

	c = c.Apply(false)
	assert.Equal(t, Counter{Current: 3, Record: 5}, c)
}

func TestRecordFollowsCurrent(t *testing.T) {
	c := Counter{Current: 5, Record: 5}
	c = c.Apply(true)
	assert.Equal(t, Counter{Current: 6, Record: 6}, c)

	c = c.Apply(false)
	assert.Equal(t, Counter{Current: 5, Record: 6}, c, "record never decreases")
}

func TestCurrentFloorsAtZero(t *testing.T) {
	c := Counter{}
	c = c.Apply(false)
	assert.Equal(t, Counter{}, c)
}

func TestInvariantsHoldForAnySequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := Counter{}
	prevRecord := 0
	for i := 0; i < 1000; i++ {
		c = c.Apply(rng.Intn(2) == 0)
		assert.GreaterOrEqual(t, c.Current, 0)
		assert.GreaterOrEqual(t, c.Record, c.Current)
		assert.GreaterOrEqual(t, c.Record, prevRecord)
		prevRecord = c.Record
	}
}

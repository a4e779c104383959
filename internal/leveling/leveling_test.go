package leveling

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddXPBelowThreshold(t *testing.T) {
	res, err := AddXP(State{Level: 2, XP: 900, Coins: 10}, 300)
	require.NoError(t, err)

	assert.Equal(t, State{Level: 2, XP: 1200, Coins: 10}, res.State)
	assert.False(t, res.LeveledUp)
	assert.Zero(t, res.BonusCoins)
}

func TestAddXPLevelsUpWithCarry(t *testing.T) {
	res, err := AddXP(State{Level: 2, XP: 1900, Coins: 10}, 300)
	require.NoError(t, err)

	assert.Equal(t, 3, res.State.Level)
	assert.Equal(t, 200, res.State.XP)
	assert.Equal(t, 10+LevelUpBonusCoins, res.State.Coins)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.LevelsGained)
}

func TestAddXPExactThreshold(t *testing.T) {
	res, err := AddXP(State{Level: 1}, 1000)
	require.NoError(t, err)
	assert.Equal(t, State{Level: 2, XP: 0, Coins: LevelUpBonusCoins}, res.State)
}

func TestAddXPMultipleLevels(t *testing.T) {
	// 1000 for level 1, 2000 for level 2, 500 left at level 3.
	res, err := AddXP(State{Level: 1}, 3500)
	require.NoError(t, err)
	assert.Equal(t, 3, res.State.Level)
	assert.Equal(t, 500, res.State.XP)
	assert.Equal(t, 2, res.LevelsGained)
	assert.Equal(t, 2*LevelUpBonusCoins, res.State.Coins)
}

func TestAddXPRejectsNegative(t *testing.T) {
	s := State{Level: 4, XP: 10}
	res, err := AddXP(s, -5)
	assert.ErrorIs(t, err, ErrNegativeXP)
	assert.Equal(t, s, res.State)
}

func TestAddXPRejectsOversizedAmount(t *testing.T) {
	s := State{Level: 2, XP: 1500}
	for _, amount := range []int{MaxXPPerCall + 1, math.MaxInt - 100, math.MaxInt} {
		res, err := AddXP(s, amount)
		assert.ErrorIs(t, err, ErrXPTooLarge)
		assert.Equal(t, s, res.State)
	}

	res, err := AddXP(s, MaxXPPerCall)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.State.XP, 0)
	assert.Less(t, res.State.XP, res.State.Threshold())
	assert.True(t, res.LeveledUp)
}

func TestXPInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := State{Level: 1}
	for i := 0; i < 500; i++ {
		res, err := AddXP(s, rng.Intn(5000))
		require.NoError(t, err)
		s = res.State
		assert.GreaterOrEqual(t, s.XP, 0)
		assert.Less(t, s.XP, s.Level*XPPerLevel)
		assert.GreaterOrEqual(t, s.Progress(), 0.0)
		assert.Less(t, s.Progress(), 100.0)
	}
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 25.0, State{Level: 2, XP: 500}.Progress(), 1e-9)
	assert.Zero(t, State{}.Progress())
}

func TestSpendCoins(t *testing.T) {
	s := State{Level: 1, Coins: 40}

	after, err := SpendCoins(s, 50)
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, 40, after.Coins)

	after, err = SpendCoins(s, 40)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Coins)

	_, err = SpendCoins(s, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

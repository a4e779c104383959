// Package leveling converts experience points into levels and guards the coin
// balance.
package leveling

import "errors"

const (
	XPPerLevel        = 1000
	LevelUpBonusCoins = 50
	// MaxXPPerCall bounds a single credit so xp cannot overflow and the
	// level loop stays short.
	MaxXPPerCall = 1_000_000
)

var (
	ErrNegativeXP        = errors.New("xp amount must not be negative")
	ErrXPTooLarge        = errors.New("xp amount exceeds the per-call limit")
	ErrInvalidAmount     = errors.New("coin amount must be positive")
	ErrInsufficientCoins = errors.New("not enough coins")
)

// State is the gamification part of a profile. XP is progress toward the next
// level and always stays below Threshold().
type State struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

type Result struct {
	State        State `json:"state"`
	LevelsGained int   `json:"levels_gained"`
	BonusCoins   int   `json:"bonus_coins"`
	LeveledUp    bool  `json:"leveled_up"`
}

func (s State) Threshold() int {
	return s.Level * XPPerLevel
}

// Progress is xp toward the next level as a percentage in [0,100).
func (s State) Progress() float64 {
	if s.Level < 1 {
		return 0
	}
	return 100 * float64(s.XP) / float64(s.Threshold())
}

func normalize(s State) State {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XP < 0 {
		s.XP = 0
	}
	return s
}

// AddXP credits amount and levels up while the carried remainder still reaches
// the threshold, paying LevelUpBonusCoins for every level gained.
func AddXP(s State, amount int) (Result, error) {
	if amount < 0 {
		return Result{State: s}, ErrNegativeXP
	}
	if amount > MaxXPPerCall {
		return Result{State: s}, ErrXPTooLarge
	}
	s = normalize(s)
	s.XP += amount

	res := Result{}
	for s.XP >= s.Threshold() {
		s.XP -= s.Threshold()
		s.Level++
		s.Coins += LevelUpBonusCoins
		res.LevelsGained++
		res.BonusCoins += LevelUpBonusCoins
	}
	res.State = s
	res.LeveledUp = res.LevelsGained > 0
	return res, nil
}

// SpendCoins debits amount or declines without touching the state.
func SpendCoins(s State, amount int) (State, error) {
	if amount <= 0 {
		return s, ErrInvalidAmount
	}
	if s.Coins < amount {
		return s, ErrInsufficientCoins
	}
	s.Coins -= amount
	return s, nil
}

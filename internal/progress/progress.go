// Package progress derives completion percentages for goals and prosperity
// pillars.
package progress

import "math"

type Input struct {
	Done   bool
	Manual *float64
	Target *float64
	Actual *float64
}

func clamp(v float64) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(math.Round(v))
	}
}

// GoalProgress returns 0..100: done wins, then a manual override, then the
// actual/target ratio.
func GoalProgress(in Input) int {
	if in.Done {
		return 100
	}
	if in.Manual != nil {
		return clamp(*in.Manual)
	}
	if in.Target != nil && *in.Target > 0 {
		actual := 0.0
		if in.Actual != nil {
			actual = *in.Actual
		}
		return clamp(math.Round(100 * actual / *in.Target))
	}
	return 0
}

// PillarGoal is a goal's progress input tagged with the pillar it counts toward.
type PillarGoal struct {
	Pillar Pillar
	Input
}

// PillarPercent averages the goals' fractional progress. With no goals it
// falls back to the manually set value, or DefaultPillarPercent.
func PillarPercent(goals []Input, manual *float64) int {
	if len(goals) == 0 {
		if manual != nil {
			return clamp(*manual)
		}
		return DefaultPillarPercent
	}
	var sum float64
	for _, g := range goals {
		if g.Done {
			sum += 1
			continue
		}
		sum += float64(GoalProgress(g)) / 100
	}
	return clamp(100 * sum / float64(len(goals)))
}

type PillarScore struct {
	Pillar  Pillar `json:"pillar"`
	Today   int    `json:"today"`
	Desired int    `json:"desired"`
}

func (s PillarScore) Gap() int {
	return s.Desired - s.Today
}

// CriticalArea returns the pillar with the largest desired-today gap. Ties keep
// the first one encountered.
func CriticalArea(scores []PillarScore) (PillarScore, bool) {
	if len(scores) == 0 {
		return PillarScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Gap() > best.Gap() {
			best = s
		}
	}
	return best, true
}

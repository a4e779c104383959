package habit

type PreferredTime string

const (
	TimeMorning   PreferredTime = "morning"
	TimeAfternoon PreferredTime = "afternoon"
	TimeEvening   PreferredTime = "evening"
	TimeAny       PreferredTime = "any"
)

func (p PreferredTime) IsValid() bool {
	switch p {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeAny:
		return true
	}
	return false
}

// HabitKind tells whether completing the habit means doing it (good) or
// resisting it (bad).
type HabitKind string

const (
	KindGood HabitKind = "good"
	KindBad  HabitKind = "bad"
)

func (k HabitKind) IsValid() bool {
	return k == KindGood || k == KindBad
}

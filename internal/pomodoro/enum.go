package pomodoro

type SessionType string

const (
	TypeFocus      SessionType = "focus"
	TypeShortBreak SessionType = "short_break"
	TypeLongBreak  SessionType = "long_break"
)

func (t SessionType) IsValid() bool {
	switch t {
	case TypeFocus, TypeShortBreak, TypeLongBreak:
		return true
	}
	return false
}

const (
	MaxSessionMinutes   = 240
	MaxBreathingSeconds = 3600
	// FocusXPPerMinute is credited for every minute of a completed focus session.
	FocusXPPerMinute = 1
	statsWindowDays  = 7
)

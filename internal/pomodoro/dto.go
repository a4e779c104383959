package pomodoro

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
)

type LogPomodoroDTO struct {
	Type            SessionType `json:"type"`
	DurationMinutes int         `json:"duration_minutes"`
	Completed       bool        `json:"completed"`
	TaskID          *uuid.UUID  `json:"task_id"`
	StartedAt       *time.Time  `json:"started_at"`
}

type LogBreathingDTO struct {
	Pattern         string `json:"pattern"`
	DurationSeconds int    `json:"duration_seconds"`
	Cycles          int    `json:"cycles"`
}

type LogPomodoroResponse struct {
	Session PomodoroSession  `json:"session"`
	XP      *leveling.Result `json:"xp,omitempty"`
}

type DayStat struct {
	Date         string `json:"date"`
	FocusMinutes int    `json:"focus_minutes"`
	Sessions     int    `json:"sessions"`
}

type StatsResponse struct {
	TotalSessions     int       `json:"total_sessions"`
	CompletedFocus    int       `json:"completed_focus"`
	FocusMinutesTotal int       `json:"focus_minutes_total"`
	FocusMinutesToday int       `json:"focus_minutes_today"`
	FocusMinutesWeek  int       `json:"focus_minutes_week"`
	BreathingSessions int       `json:"breathing_sessions"`
	BreathingMinutes  int       `json:"breathing_minutes"`
	Daily             []DayStat `json:"daily"`
}

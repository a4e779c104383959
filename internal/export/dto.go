package export

import (
	"time"

	"github.com/saulo-duarte/ascend-lambda/internal/finance"
	"github.com/saulo-duarte/ascend-lambda/internal/goal"
	"github.com/saulo-duarte/ascend-lambda/internal/habit"
	"github.com/saulo-duarte/ascend-lambda/internal/journal"
	"github.com/saulo-duarte/ascend-lambda/internal/pillar"
	"github.com/saulo-duarte/ascend-lambda/internal/pomodoro"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/task"
)

const (
	Version = "1.0"
	Tool    = "ascend"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ExportData is the unversioned dump of everything a user owns.
type ExportData struct {
	Version           string                      `json:"version"`
	ExportedAt        time.Time                   `json:"exported_at"`
	Tool              string                      `json:"tool"`
	Profile           *profile.Profile            `json:"profile"`
	Goals             []goal.Goal                 `json:"goals"`
	Tasks             []*task.Task                `json:"tasks"`
	Habits            []habit.Habit               `json:"habits"`
	HabitCompletions  []habit.HabitCompletion     `json:"habit_completions"`
	Pillars           []pillar.ProsperityPillar   `json:"pillars"`
	PomodoroSessions  []pomodoro.PomodoroSession  `json:"pomodoro_sessions"`
	BreathingSessions []pomodoro.BreathingSession `json:"breathing_sessions"`
	JournalEntries    []journal.Entry             `json:"journal_entries"`
	Transactions      []finance.Transaction       `json:"transactions"`
}

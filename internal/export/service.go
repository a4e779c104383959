package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/finance"
	"github.com/saulo-duarte/ascend-lambda/internal/goal"
	"github.com/saulo-duarte/ascend-lambda/internal/habit"
	"github.com/saulo-duarte/ascend-lambda/internal/journal"
	"github.com/saulo-duarte/ascend-lambda/internal/pillar"
	"github.com/saulo-duarte/ascend-lambda/internal/pomodoro"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/task"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown export format, use json or yaml")

type ProfileReader interface {
	FindByUserID(userID uuid.UUID) (*profile.Profile, error)
}

type GoalReader interface {
	ListByUser(userID uuid.UUID) ([]goal.Goal, error)
}

type TaskReader interface {
	ListByUser(userID uuid.UUID, filter task.ListFilter) ([]*task.Task, error)
}

type HabitReader interface {
	ListByUser(userID uuid.UUID, activeOnly bool) ([]habit.Habit, error)
	ListCompletions(userID uuid.UUID) ([]habit.HabitCompletion, error)
}

type PillarReader interface {
	ListByUser(userID uuid.UUID) ([]pillar.ProsperityPillar, error)
}

type SessionReader interface {
	ListPomodoro(userID uuid.UUID, from, to string) ([]pomodoro.PomodoroSession, error)
	ListBreathing(userID uuid.UUID, from, to string) ([]pomodoro.BreathingSession, error)
}

type JournalReader interface {
	ListByUser(userID uuid.UUID, from, to string) ([]journal.Entry, error)
}

type FinanceReader interface {
	ListByUser(userID uuid.UUID, filter finance.ListFilter) ([]finance.Transaction, error)
}

// Sources groups the read side of every feature repository.
type Sources struct {
	Profiles ProfileReader
	Goals    GoalReader
	Tasks    TaskReader
	Habits   HabitReader
	Pillars  PillarReader
	Sessions SessionReader
	Journal  JournalReader
	Finance  FinanceReader
}

type ExportService interface {
	Collect(ctx context.Context, userID uuid.UUID) (*ExportData, error)
	Render(ctx context.Context, userID uuid.UUID, format Format) ([]byte, error)
}

type exportService struct {
	src Sources
	now func() time.Time
}

func NewService(src Sources) ExportService {
	return &exportService{src: src, now: time.Now}
}

func (s *exportService) Collect(ctx context.Context, userID uuid.UUID) (*ExportData, error) {
	data := &ExportData{
		Version:    Version,
		ExportedAt: s.now().UTC(),
		Tool:       Tool,
	}

	p, err := s.src.Profiles.FindByUserID(userID)
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		data.Profile = p
	}

	if data.Goals, err = s.src.Goals.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	if data.Tasks, err = s.src.Tasks.ListByUser(userID, task.ListFilter{}); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if data.Habits, err = s.src.Habits.ListByUser(userID, false); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	if data.HabitCompletions, err = s.src.Habits.ListCompletions(userID); err != nil {
		return nil, fmt.Errorf("list habit completions: %w", err)
	}
	if data.Pillars, err = s.src.Pillars.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("list pillars: %w", err)
	}
	if data.PomodoroSessions, err = s.src.Sessions.ListPomodoro(userID, "", ""); err != nil {
		return nil, fmt.Errorf("list pomodoro sessions: %w", err)
	}
	if data.BreathingSessions, err = s.src.Sessions.ListBreathing(userID, "", ""); err != nil {
		return nil, fmt.Errorf("list breathing sessions: %w", err)
	}
	if data.JournalEntries, err = s.src.Journal.ListByUser(userID, "", ""); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	if data.Transactions, err = s.src.Finance.ListByUser(userID, finance.ListFilter{}); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	config.WithContext(ctx).WithField("goals", len(data.Goals)).
		WithField("tasks", len(data.Tasks)).
		WithField("habits", len(data.Habits)).
		Info("Export collected")
	return data, nil
}

// Render encodes the export. YAML goes through the JSON form first so both
// formats share the json field names and hidden fields.
func (s *exportService) Render(ctx context.Context, userID uuid.UUID, format Format) ([]byte, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, ErrUnknownFormat
	}

	data, err := s.Collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	if format == FormatJSON {
		return raw, nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}

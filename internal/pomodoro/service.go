package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/leveling"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

var ErrInvalidInput = errors.New("invalid session")

// TaskTimeTracker accumulates focus minutes on a task owned by userID.
type TaskTimeTracker interface {
	AddMinutesSpent(ctx context.Context, userID, taskID uuid.UUID, minutes int) error
}

type XPAwarder interface {
	AwardXP(ctx context.Context, userID uuid.UUID, amount int, attribute *profile.Attribute) (*leveling.Result, error)
}

type SessionService interface {
	LogPomodoro(ctx context.Context, userID uuid.UUID, dto LogPomodoroDTO) (*LogPomodoroResponse, error)
	LogBreathing(ctx context.Context, userID uuid.UUID, dto LogBreathingDTO) (*BreathingSession, error)
	ListPomodoro(ctx context.Context, userID uuid.UUID, from, to string) ([]PomodoroSession, error)
	ListBreathing(ctx context.Context, userID uuid.UUID, from, to string) ([]BreathingSession, error)
	Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error)
}

type sessionService struct {
	repo  SessionRepository
	tasks TaskTimeTracker
	xp    XPAwarder
	now   func() time.Time
}

func NewService(repo SessionRepository, tasks TaskTimeTracker, xp XPAwarder) SessionService {
	return &sessionService{repo: repo, tasks: tasks, xp: xp, now: time.Now}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *sessionService) LogPomodoro(ctx context.Context, userID uuid.UUID, dto LogPomodoroDTO) (*LogPomodoroResponse, error) {
	log := config.WithContext(ctx)

	if !dto.Type.IsValid() {
		return nil, invalid("unknown session type %q", dto.Type)
	}
	if dto.DurationMinutes < 1 || dto.DurationMinutes > MaxSessionMinutes {
		return nil, invalid("duration_minutes must be between 1 and %d", MaxSessionMinutes)
	}

	now := s.now()
	started := now.Add(-time.Duration(dto.DurationMinutes) * time.Minute)
	if dto.StartedAt != nil {
		started = *dto.StartedAt
	}
	focus := dto.Type == TypeFocus && dto.Completed

	session := PomodoroSession{
		ID:              uuid.New(),
		UserID:          userID,
		TaskID:          dto.TaskID,
		Type:            dto.Type,
		DurationMinutes: dto.DurationMinutes,
		Completed:       dto.Completed,
		Date:            util.DateKeyOf(started).String(),
		StartedAt:       started,
		CreatedAt:       now,
	}
	if err := s.repo.CreatePomodoro(&session); err != nil {
		log.WithError(err).Error("Failed to log pomodoro session")
		return nil, util.NewWriteError("log pomodoro", err)
	}

	// Minutes are credited only once the session row exists; a failed credit
	// removes the row again so a retry cannot double count.
	if focus && dto.TaskID != nil {
		if err := s.tasks.AddMinutesSpent(ctx, userID, *dto.TaskID, dto.DurationMinutes); err != nil {
			if delErr := s.repo.DeletePomodoro(session.ID, userID); delErr != nil {
				log.WithError(delErr).WithField("session_id", session.ID).Error("Failed to roll back pomodoro session")
			}
			return nil, err
		}
	}

	resp := &LogPomodoroResponse{Session: session}
	if focus {
		res, err := s.xp.AwardXP(ctx, userID, dto.DurationMinutes*FocusXPPerMinute, nil)
		if err != nil {
			log.WithError(err).Error("Failed to award focus xp")
		} else {
			resp.XP = res
		}
	}

	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"type":       session.Type,
		"minutes":    session.DurationMinutes,
	}).Info("Pomodoro session logged")
	return resp, nil
}

func (s *sessionService) LogBreathing(ctx context.Context, userID uuid.UUID, dto LogBreathingDTO) (*BreathingSession, error) {
	pattern := strings.TrimSpace(dto.Pattern)
	if pattern == "" || len(pattern) > 40 {
		return nil, invalid("pattern is required and must be at most 40 characters")
	}
	if dto.DurationSeconds < 1 || dto.DurationSeconds > MaxBreathingSeconds {
		return nil, invalid("duration_seconds must be between 1 and %d", MaxBreathingSeconds)
	}
	if dto.Cycles < 0 {
		return nil, invalid("cycles must not be negative")
	}

	now := s.now()
	session := BreathingSession{
		ID:              uuid.New(),
		UserID:          userID,
		Pattern:         pattern,
		DurationSeconds: dto.DurationSeconds,
		Cycles:          dto.Cycles,
		Date:            util.DateKeyOf(now).String(),
		CreatedAt:       now,
	}
	if err := s.repo.CreateBreathing(&session); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to log breathing session")
		return nil, util.NewWriteError("log breathing", err)
	}
	return &session, nil
}

func parseRange(from, to string) (string, string, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := util.ParseDateKey(d); err != nil {
			return "", "", err
		}
	}
	return from, to, nil
}

func (s *sessionService) ListPomodoro(ctx context.Context, userID uuid.UUID, from, to string) ([]PomodoroSession, error) {
	from, to, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPomodoro(userID, from, to)
}

func (s *sessionService) ListBreathing(ctx context.Context, userID uuid.UUID, from, to string) ([]BreathingSession, error) {
	from, to, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBreathing(userID, from, to)
}

// Stats aggregates all sessions; the daily series covers the last seven days
// including today.
func (s *sessionService) Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	log := config.WithContext(ctx)

	sessions, err := s.repo.ListPomodoro(userID, "", "")
	if err != nil {
		log.WithError(err).Error("Failed to list pomodoro sessions")
		return nil, err
	}
	breathing, err := s.repo.ListBreathing(userID, "", "")
	if err != nil {
		log.WithError(err).Error("Failed to list breathing sessions")
		return nil, err
	}

	today := util.DateKeyOf(s.now())
	weekStart := today.AddDays(-(statsWindowDays - 1)).String()

	resp := &StatsResponse{Daily: make([]DayStat, statsWindowDays)}
	index := make(map[string]int, statsWindowDays)
	for i := 0; i < statsWindowDays; i++ {
		day := today.AddDays(i - (statsWindowDays - 1)).String()
		resp.Daily[i] = DayStat{Date: day}
		index[day] = i
	}

	for _, ps := range sessions {
		resp.TotalSessions++
		if i, ok := index[ps.Date]; ok {
			resp.Daily[i].Sessions++
		}
		if ps.Type != TypeFocus || !ps.Completed {
			continue
		}
		resp.CompletedFocus++
		resp.FocusMinutesTotal += ps.DurationMinutes
		if ps.Date == today.String() {
			resp.FocusMinutesToday += ps.DurationMinutes
		}
		if ps.Date >= weekStart && ps.Date <= today.String() {
			resp.FocusMinutesWeek += ps.DurationMinutes
		}
		if i, ok := index[ps.Date]; ok {
			resp.Daily[i].FocusMinutes += ps.DurationMinutes
		}
	}

	seconds := 0
	for _, b := range breathing {
		resp.BreathingSessions++
		seconds += b.DurationSeconds
	}
	resp.BreathingMinutes = seconds / 60

	return resp, nil
}

package pomodoro

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	CreatePomodoro(s *PomodoroSession) error
	CreateBreathing(s *BreathingSession) error
	DeletePomodoro(id, userID uuid.UUID) error
	// Date bounds are inclusive YYYY-MM-DD keys; empty means unbounded.
	ListPomodoro(userID uuid.UUID, from, to string) ([]PomodoroSession, error)
	ListBreathing(userID uuid.UUID, from, to string) ([]BreathingSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreatePomodoro(s *PomodoroSession) error {
	return r.db.Create(s).Error
}

func (r *sessionRepository) DeletePomodoro(id, userID uuid.UUID) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&PomodoroSession{}).Error
}

func (r *sessionRepository) CreateBreathing(s *BreathingSession) error {
	return r.db.Create(s).Error
}

func dateRange(q *gorm.DB, from, to string) *gorm.DB {
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	return q
}

func (r *sessionRepository) ListPomodoro(userID uuid.UUID, from, to string) ([]PomodoroSession, error) {
	var rows []PomodoroSession
	err := dateRange(r.db.Where("user_id = ?", userID), from, to).
		Order("date, started_at").
		Find(&rows).Error
	return rows, err
}

func (r *sessionRepository) ListBreathing(userID uuid.UUID, from, to string) ([]BreathingSession, error) {
	var rows []BreathingSession
	err := dateRange(r.db.Where("user_id = ?", userID), from, to).
		Order("date, created_at").
		Find(&rows).Error
	return rows, err
}

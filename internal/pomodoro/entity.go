package pomodoro

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

// PomodoroSession is an append-only log row.
type PomodoroSession struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID   `gorm:"column:user_id;index:idx_pomodoro_user_date;not null" json:"user_id"`
	User            user.User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TaskID          *uuid.UUID  `gorm:"type:uuid;index" json:"task_id,omitempty"`
	Type            SessionType `gorm:"type:varchar(20);not null" json:"type"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes"`
	Completed       bool        `gorm:"not null" json:"completed"`
	Date            string      `gorm:"type:varchar(10);index:idx_pomodoro_user_date;not null" json:"date"`
	StartedAt       time.Time   `json:"started_at"`
	CreatedAt       time.Time   `json:"created_at"`
}

type BreathingSession struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"column:user_id;index:idx_breathing_user_date;not null" json:"user_id"`
	User            user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Pattern         string    `gorm:"type:varchar(40);not null" json:"pattern"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	Cycles          int       `gorm:"not null;default:0" json:"cycles"`
	Date            string    `gorm:"type:varchar(10);index:idx_breathing_user_date;not null" json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

package habit

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/streak"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"gorm.io/gorm"
)

type Habit struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Name          string             `gorm:"not null" json:"name"`
	Icon          string             `json:"icon,omitempty"`
	Color         string             `json:"color,omitempty"`
	TimesPerWeek  int                `gorm:"not null;default:7" json:"times_per_week"`
	PreferredTime PreferredTime      `gorm:"type:varchar(20);not null;default:'any'" json:"preferred_time"`
	Kind          HabitKind          `gorm:"type:varchar(10);not null;default:'good'" json:"kind"`
	Attribute     *profile.Attribute `gorm:"type:varchar(20)" json:"attribute,omitempty"`
	CurrentStreak int                `gorm:"not null;default:0" json:"current_streak"`
	RecordStreak  int                `gorm:"not null;default:0" json:"record_streak"`
	Active        bool               `gorm:"not null;default:true" json:"active"`
	UserID        uuid.UUID          `gorm:"column:user_id;index;not null" json:"user_id"`
	User          user.User          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (h *Habit) Counter() streak.Counter {
	return streak.Counter{Current: h.CurrentStreak, Record: h.RecordStreak}
}

func (h *Habit) SetCounter(c streak.Counter) {
	h.CurrentStreak = c.Current
	h.RecordStreak = c.Record
}

// HabitCompletion is the per-day toggle record. Date is a YYYY-MM-DD key in
// the app timezone.
type HabitCompletion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_completion_date" json:"habit_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_habit_completion_date" json:"date"`
	Done      bool      `gorm:"not null" json:"done"`
	XPAwarded bool      `gorm:"not null;default:false" json:"-"`
	UserID    uuid.UUID `gorm:"column:user_id;index;not null" json:"user_id"`
	Habit     Habit     `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

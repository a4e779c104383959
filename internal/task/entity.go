package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

type Task struct {
	ID                    uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Name                  string       `gorm:"not null" json:"name"`
	Description           string       `json:"description,omitempty"`
	Status                TaskStatus   `gorm:"type:varchar(20);index;not null" json:"status"`
	Priority              TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Deadline              *time.Time   `json:"deadline,omitempty"`
	EstimatedMinutes      int          `gorm:"not null;default:0" json:"estimated_minutes"`
	ReminderMinutes       *int         `json:"reminder_minutes,omitempty"`
	MinutesSpent          int          `gorm:"not null;default:0" json:"minutes_spent"`
	GoalID                *uuid.UUID   `gorm:"type:uuid;index" json:"goal_id,omitempty"`
	Order                 int          `gorm:"column:sort_order;not null;default:0" json:"order"`
	GoogleCalendarEventID string       `json:"google_calendar_event_id,omitempty"`
	DoneAt                *time.Time   `json:"done_at,omitempty"`
	UserID                uuid.UUID    `gorm:"column:user_id;index;not null" json:"user_id"`
	User                  user.User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusDone && t.Deadline != nil && t.Deadline.Before(now)
}

func items(tasks []*Task) []kanban.Item {
	out := make([]kanban.Item, len(tasks))
	for i, t := range tasks {
		out[i] = kanban.Item{ID: t.ID, Order: t.Order, CreatedAt: t.CreatedAt}
	}
	return out
}

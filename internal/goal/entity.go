package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

type Goal struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `json:"description,omitempty"`
	Target        *float64        `json:"target,omitempty"`
	Actual        *float64        `json:"actual,omitempty"`
	ManualPercent *float64        `json:"manual_percent,omitempty"`
	Status        GoalStatus      `gorm:"type:varchar(20);index;not null" json:"status"`
	Pillar        progress.Pillar `gorm:"type:varchar(40);index" json:"pillar"`
	Order         int             `gorm:"column:sort_order;not null;default:0" json:"order"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	XPAwarded     bool            `gorm:"not null;default:false" json:"-"`
	UserID        uuid.UUID       `gorm:"column:user_id;index;not null" json:"user_id"`
	User          user.User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (g *Goal) ProgressInput() progress.Input {
	return progress.Input{
		Done:   g.Status == StatusDone,
		Manual: g.ManualPercent,
		Target: g.Target,
		Actual: g.Actual,
	}
}

func (g *Goal) Progress() int {
	return progress.GoalProgress(g.ProgressInput())
}

func (g *Goal) item() kanban.Item {
	return kanban.Item{ID: g.ID, Order: g.Order, CreatedAt: g.CreatedAt}
}

func items(goals []Goal) []kanban.Item {
	out := make([]kanban.Item, len(goals))
	for i := range goals {
		out[i] = goals[i].item()
	}
	return out
}

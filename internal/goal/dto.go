package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	"github.com/saulo-duarte/ascend-lambda/internal/progress"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
)

type CreateGoalDTO struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Target        *float64            `json:"target"`
	Actual        *float64            `json:"actual"`
	ManualPercent *float64            `json:"manual_percent"`
	Status        GoalStatus          `json:"status"`
	Pillar        progress.Pillar     `json:"pillar"`
	Deadline      *util.LocalDateTime `json:"deadline"`
}

type UpdateGoalDTO struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Target        *float64            `json:"target"`
	Actual        *float64            `json:"actual"`
	ClearTarget   bool                `json:"clear_target"`
	ManualPercent *float64            `json:"manual_percent"`
	ClearManual   bool                `json:"clear_manual_percent"`
	Status        *GoalStatus         `json:"status"`
	Pillar        *progress.Pillar    `json:"pillar"`
	Deadline      *util.LocalDateTime `json:"deadline"`
}

type MoveGoalDTO struct {
	Direction kanban.Direction `json:"direction"`
}

type GoalResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Target        *float64        `json:"target,omitempty"`
	Actual        *float64        `json:"actual,omitempty"`
	ManualPercent *float64        `json:"manual_percent,omitempty"`
	Progress      int             `json:"progress"`
	Status        GoalStatus      `json:"status"`
	Pillar        progress.Pillar `json:"pillar"`
	Order         int             `json:"order"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ColumnResponse struct {
	Status GoalStatus     `json:"status"`
	Goals  []GoalResponse `json:"goals"`
}

func toResponse(g *Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		Target:        g.Target,
		Actual:        g.Actual,
		ManualPercent: g.ManualPercent,
		Progress:      g.Progress(),
		Status:        g.Status,
		Pillar:        g.Pillar,
		Order:         g.Order,
		Deadline:      g.Deadline,
		CompletedAt:   g.CompletedAt,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

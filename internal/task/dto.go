package task

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
)

type CreateTaskDTO struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Status           TaskStatus          `json:"status"`
	Priority         TaskPriority        `json:"priority"`
	Deadline         *util.LocalDateTime `json:"deadline"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	ReminderMinutes  *int                `json:"reminder_minutes"`
	GoalID           *uuid.UUID          `json:"goal_id"`
}

type UpdateTaskDTO struct {
	Name             *string             `json:"name"`
	Description      *string             `json:"description"`
	Status           *TaskStatus         `json:"status"`
	Priority         *TaskPriority       `json:"priority"`
	Deadline         *util.LocalDateTime `json:"deadline"`
	ClearDeadline    bool                `json:"clear_deadline"`
	EstimatedMinutes *int                `json:"estimated_minutes"`
	ReminderMinutes  *int                `json:"reminder_minutes"`
	GoalID           *uuid.UUID          `json:"goal_id"`
	ClearGoal        bool                `json:"clear_goal"`
}

type MoveTaskDTO struct {
	Direction kanban.Direction `json:"direction"`
}

type ListFilter struct {
	Status TaskStatus
	GoalID *uuid.UUID
}

type TaskStats struct {
	Total        int `json:"total"`
	Todo         int `json:"todo"`
	InProgress   int `json:"in_progress"`
	Done         int `json:"done"`
	Overdue      int `json:"overdue"`
	MinutesSpent int `json:"minutes_spent"`
}

type DashboardStatsResponse struct {
	Stats    TaskStats `json:"stats"`
	Upcoming []*Task   `json:"upcoming"`
}

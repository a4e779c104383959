package task

import (
	googlecalendar "github.com/saulo-duarte/ascend-lambda/internal/google_calendar"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Handler *Handler
	Service TaskService
	Repo    TaskRepository
}

func NewTaskContainer(
	db *gorm.DB,
	goals GoalFinder,
	calendarManager googlecalendar.CalendarManager,
) *TaskContainer {
	repo := NewRepository(db)
	service := NewService(repo, goals, calendarManager)
	handler := NewHandler(service)

	return &TaskContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

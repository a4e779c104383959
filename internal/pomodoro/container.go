package pomodoro

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service SessionService
	Repo    SessionRepository
}

func NewContainer(db *gorm.DB, tasks TaskTimeTracker, xp XPAwarder) *Container {
	repo := NewRepository(db)
	service := NewService(repo, tasks, xp)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}

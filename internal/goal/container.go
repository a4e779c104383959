package goal

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service GoalService
	Repo    GoalRepository
}

func NewContainer(db *gorm.DB, xp XPAwarder) *Container {
	repo := NewRepository(db)
	service := NewService(repo, xp)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

package habit

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service HabitService
	Repo    HabitRepository
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

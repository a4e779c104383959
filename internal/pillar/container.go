package pillar

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service PillarService
	Repo    PillarRepository
}

func NewContainer(db *gorm.DB, goals GoalSource) *Container {
	repo := NewRepository(db)
	service := NewService(repo, goals)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}

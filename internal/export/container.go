package export

type Container struct {
	Handler *Handler
}

func NewContainer(src Sources) *Container {
	return &Container{Handler: NewHandler(NewService(src))}
}

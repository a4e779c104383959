package coach

import (
	"os"

	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/middlewares"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const DefaultModel = "gemini-2.0-flash"

type CoachContainer struct {
	Handler *Handler
	Limiter *middlewares.RateLimiter
}

// NewCoachContainer allows a burst of 5 chats per user, refilling one every
// 12 seconds.
func NewCoachContainer(db *gorm.DB, keys KeySource) *CoachContainer {
	provider := NewGeminiProvider(config.Getenv("COACH_MODEL", DefaultModel))
	service := NewService(provider, keys, NewRepository(db), os.Getenv("GEMINI_API_KEY"))
	handler := NewHandler(service)

	return &CoachContainer{
		Handler: handler,
		Limiter: middlewares.NewRateLimiter(rate.Limit(5.0/60.0), 5),
	}
}

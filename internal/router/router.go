package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/coach"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/export"
	"github.com/saulo-duarte/ascend-lambda/internal/finance"
	"github.com/saulo-duarte/ascend-lambda/internal/goal"
	"github.com/saulo-duarte/ascend-lambda/internal/habit"
	"github.com/saulo-duarte/ascend-lambda/internal/journal"
	"github.com/saulo-duarte/ascend-lambda/internal/middlewares"
	"github.com/saulo-duarte/ascend-lambda/internal/pillar"
	"github.com/saulo-duarte/ascend-lambda/internal/pomodoro"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/task"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	ProfileHandler *profile.Handler
	GoalHandler    *goal.Handler
	TaskHandler    *task.Handler
	HabitHandler   *habit.Handler
	PillarHandler  *pillar.Handler
	SessionHandler *pomodoro.Handler
	JournalHandler *journal.Handler
	FinanceHandler *finance.Handler
	CoachHandler   *coach.Handler
	CoachLimiter   *middlewares.RateLimiter
	ExportHandler  *export.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.With(middlewares.MetricsBasicAuth).Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.UserHandler.SignUp)
		r.Post("/login", cfg.UserHandler.SignIn)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/profile", profile.Routes(cfg.ProfileHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
		r.Mount("/habits", habit.Routes(cfg.HabitHandler))
		r.Mount("/pillars", pillar.Routes(cfg.PillarHandler))
		r.Mount("/sessions", pomodoro.Routes(cfg.SessionHandler))
		r.Mount("/journal", journal.Routes(cfg.JournalHandler))
		r.Mount("/finance", finance.Routes(cfg.FinanceHandler))
		r.Mount("/coach", coach.Routes(cfg.CoachHandler, cfg.CoachLimiter))
		r.Mount("/export", export.Routes(cfg.ExportHandler))
	})
	return r
}

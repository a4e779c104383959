package container

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/coach"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/export"
	"github.com/saulo-duarte/ascend-lambda/internal/finance"
	"github.com/saulo-duarte/ascend-lambda/internal/goal"
	googlecalendar "github.com/saulo-duarte/ascend-lambda/internal/google_calendar"
	"github.com/saulo-duarte/ascend-lambda/internal/habit"
	"github.com/saulo-duarte/ascend-lambda/internal/journal"
	"github.com/saulo-duarte/ascend-lambda/internal/pillar"
	"github.com/saulo-duarte/ascend-lambda/internal/pomodoro"
	"github.com/saulo-duarte/ascend-lambda/internal/profile"
	"github.com/saulo-duarte/ascend-lambda/internal/router"
	"github.com/saulo-duarte/ascend-lambda/internal/task"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
)

type Container struct {
	UserContainer           *user.UserContainer
	ProfileContainer        *profile.Container
	GoalContainer           *goal.Container
	TaskContainer           *task.TaskContainer
	HabitContainer          *habit.Container
	PillarContainer         *pillar.Container
	SessionContainer        *pomodoro.Container
	JournalContainer        *journal.Container
	FinanceContainer        *finance.Container
	CoachContainer          *coach.CoachContainer
	ExportContainer         *export.Container
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
}

func models() []any {
	return []any{
		&user.User{},
		&profile.Profile{},
		&goal.Goal{},
		&task.Task{},
		&habit.Habit{},
		&habit.HabitCompletion{},
		&pillar.ProsperityPillar{},
		&pomodoro.PomodoroSession{},
		&pomodoro.BreathingSession{},
		&journal.Entry{},
		&finance.Transaction{},
		&coach.Transcript{},
	}
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	ctx := context.Background()
	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if os.Getenv("SKIP_MIGRATIONS") != "true" {
		if err := config.Migrate(ctx, models()...); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
	}

	db := config.DB
	oauthConfig := user.GoogleOAuthConfig()

	profileContainer := profile.NewContainer(db)
	userContainer := user.NewUserContainer(db, oauthConfig, profileContainer.Service)
	goalContainer := goal.NewContainer(db, profileContainer.Service)
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(userContainer.Repo, oauthConfig)
	taskContainer := task.NewTaskContainer(db, goalContainer.Service, calendarContainer.Manager)
	habitContainer := habit.NewContainer(db, profileContainer.Service)
	pillarContainer := pillar.NewContainer(db, goalContainer.Service)
	sessionContainer := pomodoro.NewContainer(db, taskContainer.Service, profileContainer.Service)
	journalContainer := journal.NewContainer(db)
	financeContainer := finance.NewContainer(db)
	coachContainer := coach.NewCoachContainer(db, profileContainer.Service)

	exportContainer := export.NewContainer(export.Sources{
		Profiles: profileContainer.Repo,
		Goals:    goalContainer.Repo,
		Tasks:    taskContainer.Repo,
		Habits:   habitContainer.Repo,
		Pillars:  pillarContainer.Repo,
		Sessions: sessionContainer.Repo,
		Journal:  journalContainer.Repo,
		Finance:  financeContainer.Repo,
	})

	return &Container{
		UserContainer:           userContainer,
		ProfileContainer:        profileContainer,
		GoalContainer:           goalContainer,
		TaskContainer:           taskContainer,
		HabitContainer:          habitContainer,
		PillarContainer:         pillarContainer,
		SessionContainer:        sessionContainer,
		JournalContainer:        journalContainer,
		FinanceContainer:        financeContainer,
		CoachContainer:          coachContainer,
		ExportContainer:         exportContainer,
		GoogleCalendarContainer: calendarContainer,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		ProfileHandler: c.ProfileContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		TaskHandler:    c.TaskContainer.Handler,
		HabitHandler:   c.HabitContainer.Handler,
		PillarHandler:  c.PillarContainer.Handler,
		SessionHandler: c.SessionContainer.Handler,
		JournalHandler: c.JournalContainer.Handler,
		FinanceHandler: c.FinanceContainer.Handler,
		CoachHandler:   c.CoachContainer.Handler,
		CoachLimiter:   c.CoachContainer.Limiter,
		ExportHandler:  c.ExportContainer.Handler,
	})
}

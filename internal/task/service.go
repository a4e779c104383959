package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/goal"
	googlecalendar "github.com/saulo-duarte/ascend-lambda/internal/google_calendar"
	"github.com/saulo-duarte/ascend-lambda/internal/kanban"
	util "github.com/saulo-duarte/ascend-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

const upcomingLimit = 5

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrGoalNotFound = goal.ErrGoalNotFound
	ErrInvalidID    = errors.New("invalid id format")
	ErrInvalidInput = errors.New("invalid task")
)

// GoalFinder resolves a goal owned by the caller in ctx.
type GoalFinder interface {
	Get(ctx context.Context, id string) (*goal.GoalResponse, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error)
	FindAllByUser(ctx context.Context, filter ListFilter) ([]*Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error)
	DeleteByID(ctx context.Context, id string) error
	Move(ctx context.Context, id string, dir kanban.Direction) ([]*Task, error)
	Stats(ctx context.Context) (*DashboardStatsResponse, error)
	AddMinutesSpent(ctx context.Context, userID, taskID uuid.UUID, minutes int) error
}

type taskService struct {
	repo     TaskRepository
	goals    GoalFinder
	calendar googlecalendar.CalendarManager
}

func NewService(repo TaskRepository, goals GoalFinder, calendar googlecalendar.CalendarManager) TaskService {
	return &taskService{
		repo:     repo,
		goals:    goals,
		calendar: calendar,
	}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validate(t *Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name is required")
	}
	if !t.Status.IsValid() {
		return invalid("unknown status %q", t.Status)
	}
	if !t.Priority.IsValid() {
		return invalid("unknown priority %q", t.Priority)
	}
	if t.EstimatedMinutes < 0 {
		return invalid("estimated_minutes must not be negative")
	}
	if t.ReminderMinutes != nil && *t.ReminderMinutes < 0 {
		return invalid("reminder_minutes must not be negative")
	}
	return nil
}

func (s *taskService) validateGoal(ctx context.Context, log logrus.FieldLogger, t *Task) error {
	if t.GoalID == nil {
		return nil
	}
	if _, err := s.goals.Get(ctx, t.GoalID.String()); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"goal_id": t.GoalID,
			"user_id": t.UserID,
		}).Warn("Goal not found or does not belong to the user")
		return ErrGoalNotFound
	}
	return nil
}

func (s *taskService) find(ctx context.Context, log logrus.FieldLogger, id string, action string) (*Task, error) {
	userID, err := getUserIDFromContext(ctx, log, action)
	if err != nil {
		return nil, err
	}
	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return nil, err
	}
	t, err := s.repo.FindByIdAndUserId(taskID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"task_id": id,
				"user_id": userID,
			}).Warn("Task not found or does not belong to user")
			return nil, ErrTaskNotFound
		}
		log.WithError(err).Error("Error finding task by ID")
		return nil, err
	}
	return t, nil
}

func (s *taskService) appendTo(t *Task) error {
	column, err := s.repo.ListByStatus(t.UserID, t.Status)
	if err != nil {
		return err
	}
	t.Order = kanban.Next(items(column))
	return nil
}

func calendarTask(t *Task) *googlecalendar.CalendarTask {
	ct := &googlecalendar.CalendarTask{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		Deadline:         t.Deadline,
		EstimatedMinutes: t.EstimatedMinutes,
		ReminderMinutes:  t.ReminderMinutes,
	}
	if t.GoogleCalendarEventID != "" {
		id := t.GoogleCalendarEventID
		ct.GoogleCalendarEventID = &id
	}
	return ct
}

// syncCalendar mirrors the deadline to Google Calendar and stores a changed
// event id. Calendar failures never fail the task write.
func (s *taskService) syncCalendar(ctx context.Context, log logrus.FieldLogger, t *Task) {
	eventID, err := s.calendar.SyncTask(ctx, t.UserID, calendarTask(t))
	if err != nil {
		log.WithError(err).Warnf("Failed to sync task %s with Google Calendar", t.ID)
		return
	}
	if eventID == t.GoogleCalendarEventID {
		return
	}
	t.GoogleCalendarEventID = eventID
	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to update task with Google Calendar Event ID")
	}
}

func (s *taskService) CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create task")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Task{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(dto.Name),
		Description:      dto.Description,
		Status:           dto.Status,
		Priority:         dto.Priority,
		Deadline:         util.ToTimePtr(dto.Deadline),
		EstimatedMinutes: dto.EstimatedMinutes,
		ReminderMinutes:  dto.ReminderMinutes,
		GoalID:           dto.GoalID,
		UserID:           userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == StatusDone {
		t.DoneAt = &now
	}

	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.validateGoal(ctx, log, t); err != nil {
		return nil, err
	}
	if err := s.appendTo(t); err != nil {
		log.WithError(err).Error("Failed to load task column")
		return nil, err
	}

	if err := s.repo.Create(t); err != nil {
		log.WithError(err).Error("Failed to create task")
		return nil, util.NewWriteError("create task", err)
	}

	if t.Deadline != nil {
		s.syncCalendar(ctx, log, t)
	}

	log.WithField("task_id", t.ID).Info("Task created successfully")
	return t, nil
}

func (s *taskService) FindAllByUser(ctx context.Context, filter ListFilter) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks")
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalid("unknown status %q", filter.Status)
	}

	tasks, err := s.repo.ListByUser(userID, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks by user")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) FindByID(ctx context.Context, id string) (*Task, error) {
	return s.find(ctx, config.WithContext(ctx), id, "find task")
}

func (s *taskService) UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	existing, err := s.find(ctx, log, id, "update task")
	if err != nil {
		return nil, err
	}

	updateCalendar := false

	if dto.Name != nil && strings.TrimSpace(*dto.Name) != existing.Name {
		existing.Name = strings.TrimSpace(*dto.Name)
		updateCalendar = true
	}
	if dto.Description != nil && *dto.Description != existing.Description {
		existing.Description = *dto.Description
		updateCalendar = true
	}
	if dto.ClearDeadline {
		existing.Deadline = nil
		updateCalendar = true
	} else if dto.Deadline != nil && (existing.Deadline == nil || !dto.Deadline.Equal(*existing.Deadline)) {
		existing.Deadline = util.ToTimePtr(dto.Deadline)
		updateCalendar = true
	}
	if dto.EstimatedMinutes != nil && *dto.EstimatedMinutes != existing.EstimatedMinutes {
		existing.EstimatedMinutes = *dto.EstimatedMinutes
		updateCalendar = true
	}
	if dto.ReminderMinutes != nil {
		existing.ReminderMinutes = dto.ReminderMinutes
		updateCalendar = true
	}
	if dto.Priority != nil {
		existing.Priority = *dto.Priority
	}
	if dto.ClearGoal {
		existing.GoalID = nil
	} else if dto.GoalID != nil {
		existing.GoalID = dto.GoalID
		if err := s.validateGoal(ctx, log, existing); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if dto.Status != nil && *dto.Status != existing.Status {
		existing.Status = *dto.Status
		if !existing.Status.IsValid() {
			return nil, invalid("unknown status %q", existing.Status)
		}
		if err := s.appendTo(existing); err != nil {
			log.WithError(err).Error("Failed to load task column")
			return nil, err
		}
		if existing.Status == StatusDone {
			existing.DoneAt = &now
		} else {
			existing.DoneAt = nil
		}
	}

	if err := validate(existing); err != nil {
		return nil, err
	}

	existing.UpdatedAt = now
	if err := s.repo.Update(existing); err != nil {
		log.WithError(err).Error("Failed to update task")
		return nil, util.NewWriteError("update task", err)
	}

	if updateCalendar {
		s.syncCalendar(ctx, log, existing)
	}

	log.WithField("task_id", existing.ID).Info("Task updated successfully")
	return existing, nil
}

func (s *taskService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	t, err := s.find(ctx, log, id, "delete task")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(t.ID, t.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		log.WithError(err).Error("Failed to delete task")
		return util.NewWriteError("delete task", err)
	}

	if err := s.calendar.RemoveTask(ctx, t.UserID, t.GoogleCalendarEventID); err != nil {
		log.WithError(err).Warnf("Failed to delete Google Calendar event %s for task %s", t.GoogleCalendarEventID, id)
	}

	log.WithField("task_id", id).Info("Task deleted successfully")
	return nil
}

func (s *taskService) Move(ctx context.Context, id string, dir kanban.Direction) ([]*Task, error) {
	log := config.WithContext(ctx)
	if !dir.IsValid() {
		return nil, kanban.ErrInvalidDirection
	}
	t, err := s.find(ctx, log, id, "move task")
	if err != nil {
		return nil, err
	}

	column, err := s.repo.ListByStatus(t.UserID, t.Status)
	if err != nil {
		log.WithError(err).Error("Failed to load task column")
		return nil, err
	}

	changes, err := kanban.Move(items(column), t.ID, dir)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := s.repo.ApplyOrder(t.UserID, changes); err != nil {
			log.WithError(err).WithField("task_id", t.ID).Error("Failed to persist task order")
			return nil, util.NewWriteError("move task", err)
		}
	}

	orders := make(map[uuid.UUID]int, len(changes))
	for _, c := range changes {
		orders[c.ID] = c.Order
	}
	for _, ct := range column {
		if o, ok := orders[ct.ID]; ok {
			ct.Order = o
		}
	}
	sorted := items(column)
	kanban.Sort(sorted)
	byID := make(map[uuid.UUID]*Task, len(column))
	for _, ct := range column {
		byID[ct.ID] = ct
	}
	out := make([]*Task, len(sorted))
	for i, it := range sorted {
		out[i] = byID[it.ID]
	}
	return out, nil
}

func (s *taskService) Stats(ctx context.Context) (*DashboardStatsResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "load task stats")
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByUser(userID, ListFilter{})
	if err != nil {
		log.WithError(err).Error("Failed to list tasks for stats")
		return nil, err
	}

	now := time.Now()
	resp := &DashboardStatsResponse{Upcoming: []*Task{}}
	for _, t := range tasks {
		resp.Stats.Total++
		resp.Stats.MinutesSpent += t.MinutesSpent
		switch t.Status {
		case StatusTodo:
			resp.Stats.Todo++
		case StatusInProgress:
			resp.Stats.InProgress++
		case StatusDone:
			resp.Stats.Done++
		}
		if t.IsOverdue(now) {
			resp.Stats.Overdue++
		}
		if t.Status != StatusDone && t.Deadline != nil && !t.Deadline.Before(now) {
			resp.Upcoming = append(resp.Upcoming, t)
		}
	}

	sort.Slice(resp.Upcoming, func(i, j int) bool {
		return resp.Upcoming[i].Deadline.Before(*resp.Upcoming[j].Deadline)
	})
	if len(resp.Upcoming) > upcomingLimit {
		resp.Upcoming = resp.Upcoming[:upcomingLimit]
	}
	return resp, nil
}

func (s *taskService) AddMinutesSpent(ctx context.Context, userID, taskID uuid.UUID, minutes int) error {
	if minutes <= 0 {
		return nil
	}
	if err := s.repo.AddMinutes(taskID, userID, minutes); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to add minutes to task")
		return util.NewWriteError("add task minutes", err)
	}
	return nil
}

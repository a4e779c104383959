package googlecalendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

// CalendarManager keeps one event per task in step with the task's deadline.
// Errors are for logging only; callers never fail the task on them.
type CalendarManager interface {
	SyncTask(ctx context.Context, userID uuid.UUID, task *CalendarTask) (eventID string, err error)
	RemoveTask(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

// notLinked reports errors caused by a user who never granted calendar access.
func notLinked(err error) bool {
	return errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrUserNotFound)
}

func (m *calendarManager) SyncTask(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"task_id": task.ID})

	var current string
	if task.GoogleCalendarEventID != nil {
		current = *task.GoogleCalendarEventID
	}

	switch {
	case task.Deadline == nil && current == "":
		return "", nil

	case task.Deadline == nil:
		log.Info("Task deadline cleared, deleting calendar event")
		if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, current); err != nil {
			return current, err
		}
		return "", nil

	case current != "":
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, task); err != nil {
			if notLinked(err) {
				return current, nil
			}
			return current, err
		}
		return current, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, task)
	if err != nil {
		if notLinked(err) {
			log.Debug("User has no calendar access, skipping event")
			return "", nil
		}
		return "", err
	}
	if eventID != "" {
		log.WithField("event_id", eventID).Info("Calendar event created")
	}
	return eventID, nil
}

func (m *calendarManager) RemoveTask(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}
	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}
	return nil
}

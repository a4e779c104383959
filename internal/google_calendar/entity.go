package googlecalendar

import (
	"time"

	"github.com/google/uuid"
)

// CalendarTask is the slice of a task that is mirrored to Google Calendar.
type CalendarTask struct {
	ID                    uuid.UUID
	Name                  string
	Description           string
	Deadline              *time.Time
	EstimatedMinutes      int
	ReminderMinutes       *int
	GoogleCalendarEventID *string
}

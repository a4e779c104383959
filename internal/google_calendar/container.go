package googlecalendar

import (
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"golang.org/x/oauth2"
)

type GoogleCalendarContainer struct {
	CalendarService CalendarService
	Manager         CalendarManager
}

func NewGoogleCalendarContainer(userRepo user.UserRepository, oauthConfig *oauth2.Config) *GoogleCalendarContainer {
	calendarService := NewCalendarService(userRepo, oauthConfig)

	return &GoogleCalendarContainer{
		CalendarService: calendarService,
		Manager:         NewCalendarManager(calendarService),
	}
}

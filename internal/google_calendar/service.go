package googlecalendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/user"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	calendarID = "primary"
	// DefaultEventDuration is used when the task has no estimate.
	DefaultEventDuration = time.Hour
	// MaxReminderMinutes is the largest override Google accepts (four weeks).
	MaxReminderMinutes = 40320
)

var (
	ErrUserNotFound          = errors.New("user not found for calendar integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingCalendarTokens = errors.New("user has no google access token")
	ErrMissingEventID        = errors.New("cannot update event: missing Google Calendar Event ID")
)

type CalendarService interface {
	AddEventToCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error)
	UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) error
	DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config) CalendarService {
	return &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}

	if u.EncryptedGoogleAccessToken == "" {
		return nil, ErrMissingCalendarTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}
	var refreshToken string
	if u.EncryptedGoogleRefreshToken != "" {
		refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	newToken, err := tokenSource.Token()
	if err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	if newToken.AccessToken != accessToken {
		s.persistToken(ctx, u, newToken)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(newToken))
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}

	return srv, nil
}

func (s *calendarService) persistToken(ctx context.Context, u *user.User, token *oauth2.Token) {
	log := config.WithContext(ctx)
	enc, err := config.Encrypt(token.AccessToken)
	if err != nil {
		log.WithError(err).Warn("Failed to encrypt refreshed Google token")
		return
	}
	u.EncryptedGoogleAccessToken = enc
	if err := s.userRepo.Update(u); err != nil {
		log.WithError(err).Warn("Failed to persist refreshed Google token")
		return
	}
	log.Info("Google token refreshed")
}

// BuildEvent maps a task to a timed event ending at the deadline. The event
// starts EstimatedMinutes earlier (one hour without an estimate) and carries a
// popup reminder when ReminderMinutes is set.
func BuildEvent(task *CalendarTask) *gcal.Event {
	if task.Deadline == nil {
		return nil
	}

	duration := DefaultEventDuration
	if task.EstimatedMinutes > 0 {
		duration = time.Duration(task.EstimatedMinutes) * time.Minute
	}

	event := &gcal.Event{
		Summary:     task.Name,
		Description: task.Description,
		Start: &gcal.EventDateTime{
			DateTime: task.Deadline.Add(-duration).Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: task.Deadline.Format(time.RFC3339),
		},
		Reminders: &gcal.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if task.ReminderMinutes != nil {
		minutes := *task.ReminderMinutes
		if minutes < 0 {
			minutes = 0
		}
		if minutes > MaxReminderMinutes {
			minutes = MaxReminderMinutes
		}
		event.Reminders = &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: int64(minutes), ForceSendFields: []string{"Minutes"}},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}

	return event
}

func (s *calendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error) {
	log := config.WithContext(ctx)

	event := BuildEvent(task)
	if event == nil {
		log.Warnf("Task %s has no deadline to create a calendar event", task.ID)
		return "", nil
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return "", err
	}

	calEvent, err := srv.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to insert calendar event")
		return "", err
	}

	return calEvent.Id, nil
}

func (s *calendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) error {
	log := config.WithContext(ctx)
	if task.GoogleCalendarEventID == nil || *task.GoogleCalendarEventID == "" {
		return ErrMissingEventID
	}

	event := BuildEvent(task)
	if event == nil {
		log.Warnf("Task %s no longer has a deadline, deleting calendar event", task.ID)
		return s.DeleteEventFromCalendar(ctx, userID, *task.GoogleCalendarEventID)
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	_, err = srv.Events.Update(calendarID, *task.GoogleCalendarEventID, event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to update calendar event")
		return err
	}

	return nil
}

func (s *calendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrDecryptionFailed) {
			log.Warnf("Skipping Google Calendar deletion for event %s due to missing/invalid token", googleEventID)
			return nil
		}
		return err
	}

	err = srv.Events.Delete(calendarID, googleEventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			log.Warnf("Calendar event %s not found on Google, considering deleted.", googleEventID)
			return nil
		}
		log.WithError(err).Error("Failed to delete calendar event")
		return err
	}

	return nil
}

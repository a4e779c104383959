package user

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	googleoauth "google.golang.org/api/oauth2/v2"
	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			googleoauth.UserinfoEmailScope,
			googleoauth.UserinfoProfileScope,
			gcal.CalendarEventsScope,
		},
		Endpoint: google.Endpoint,
	}
}

func NewUserContainer(db *gorm.DB, oauthConfig *oauth2.Config, profiles ProfileInitializer) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, NewGoogleIdentityProvider(oauthConfig), profiles)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

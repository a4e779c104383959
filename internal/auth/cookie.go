package auth

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/ascend-lambda/internal/config"
)

const (
	AccessCookieName  = "jwt"
	RefreshCookieName = "refresh_token"
)

func newCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   config.Getenv("COOKIE_DOMAIN", ""),
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// SetSessionCookies writes the access and refresh tokens of a freshly issued session.
func SetSessionCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, newCookie(AccessCookieName, access, AccessTokenTTL))
	http.SetCookie(w, newCookie(RefreshCookieName, refresh, RefreshTokenTTL))
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c := newCookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

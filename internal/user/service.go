package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("name, email and password are required")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ProfileInitializer creates the per-user profile singleton on first sign-in.
type ProfileInitializer interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, displayName string) error
}

type UserService interface {
	SignUp(ctx context.Context, dto SignUpDTO) (*SessionResponse, error)
	SignIn(ctx context.Context, dto SignInDTO) (*SessionResponse, error)
	GoogleLogin(ctx context.Context, code string) (*SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error)
	Me(ctx context.Context) (*UserResponse, error)
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	repo     UserRepository
	google   GoogleIdentityProvider
	profiles ProfileInitializer
}

func NewService(repo UserRepository, google GoogleIdentityProvider, profiles ProfileInitializer) UserService {
	return &userService{repo: repo, google: google, profiles: profiles}
}

func (s *userService) issueSession(u *User) (*SessionResponse, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, auth.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), auth.RefreshRole, auth.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{User: toResponse(u), AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) ensureProfile(ctx context.Context, u *User) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.EnsureProfile(ctx, u.ID, u.Name); err != nil {
		config.WithContext(ctx).WithError(err).WithField("user_id", u.ID).Warn("Failed to ensure profile")
	}
}

func (s *userService) SignUp(ctx context.Context, dto SignUpDTO) (*SessionResponse, error) {
	log := config.WithContext(ctx)

	email := strings.TrimSpace(strings.ToLower(dto.Email))
	if email == "" || strings.TrimSpace(dto.Name) == "" || dto.Password == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to check email")
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}
	s.ensureProfile(ctx, u)

	log.WithField("user_id", u.ID).Info("User signed up")
	return s.issueSession(u)
}

func (s *userService) SignIn(ctx context.Context, dto SignInDTO) (*SessionResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByEmail(strings.TrimSpace(dto.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to load user for sign-in")
		return nil, err
	}
	if u.PasswordHash == "" || !auth.CheckPassword(u.PasswordHash, dto.Password) {
		return nil, ErrInvalidCredentials
	}

	s.ensureProfile(ctx, u)
	return s.issueSession(u)
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*SessionResponse, error) {
	log := config.WithContext(ctx)

	identity, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByGoogleID(identity.GoogleID)
	if errors.Is(err, ErrNotFound) {
		u, err = s.repo.GetByEmail(identity.Email)
	}
	isNew := false
	switch {
	case errors.Is(err, ErrNotFound):
		isNew = true
		u = &User{ID: uuid.New(), Email: strings.ToLower(identity.Email), Role: "user", CreatedAt: time.Now()}
	case err != nil:
		log.WithError(err).Error("Failed to load user for Google login")
		return nil, err
	}

	googleID := identity.GoogleID
	u.GoogleID = &googleID
	u.Name = identity.Name
	u.PictureURL = identity.PictureURL
	u.UpdatedAt = time.Now()

	if identity.AccessToken != "" {
		enc, err := config.Encrypt(identity.AccessToken)
		if err != nil {
			return nil, err
		}
		u.EncryptedGoogleAccessToken = enc
	}
	if identity.RefreshToken != "" {
		enc, err := config.Encrypt(identity.RefreshToken)
		if err != nil {
			return nil, err
		}
		u.EncryptedGoogleRefreshToken = enc
	}

	if isNew {
		err = s.repo.Create(u)
	} else {
		err = s.repo.Update(u)
	}
	if err != nil {
		log.WithError(err).Error("Failed to persist Google user")
		return nil, err
	}
	s.ensureProfile(ctx, u)

	log.WithField("user_id", u.ID).Info("User signed in with Google")
	return s.issueSession(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil || claims.Role != auth.RefreshRole {
		return nil, ErrInvalidRefresh
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	return s.issueSession(u)
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(u)
	return &resp, nil
}

func (s *userService) DeleteAccount(ctx context.Context) error {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(claims.UserID); err != nil {
		return err
	}
	config.WithContext(ctx).Info("Account deleted")
	return nil
}

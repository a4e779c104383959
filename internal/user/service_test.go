package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/ascend-lambda/internal/auth"
	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[uuid.UUID]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*User{}}
}

func (r *fakeRepo) Create(u *User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(u *User) error { return r.Create(u) }

func (r *fakeRepo) GetByID(id string) (*User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if u, ok := r.users[parsed]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByEmail(email string) (*User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByGoogleID(googleID string) (*User, error) {
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Delete(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	if _, ok := r.users[parsed]; !ok {
		return ErrNotFound
	}
	delete(r.users, parsed)
	return nil
}

type fakeGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (g *fakeGoogle) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	return g.identity, g.err
}

type fakeProfiles struct {
	ensured []uuid.UUID
}

func (p *fakeProfiles) EnsureProfile(ctx context.Context, userID uuid.UUID, name string) error {
	p.ensured = append(p.ensured, userID)
	return nil
}

func setup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-with-enough-length-1234")
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	auth.Init()
	config.InitCrypto()
}

func TestSignUpAndSignIn(t *testing.T) {
	setup(t)
	repo := newFakeRepo()
	profiles := &fakeProfiles{}
	svc := NewService(repo, &fakeGoogle{}, profiles)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpDTO{Name: "Ana", Email: "Ana@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Len(t, profiles.ensured, 1)

	claims, err := auth.ValidateJWT(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID.String(), claims.UserID)

	_, err = svc.SignUp(ctx, SignUpDTO{Name: "Ana", Email: "ana@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.SignIn(ctx, SignInDTO{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	again, err := svc.SignIn(ctx, SignInDTO{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)
}

func TestSignUpValidation(t *testing.T) {
	setup(t)
	svc := NewService(newFakeRepo(), &fakeGoogle{}, nil)

	_, err := svc.SignUp(context.Background(), SignUpDTO{Email: "x@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SignUp(context.Background(), SignUpDTO{Name: "X", Email: "x@example.com", Password: "short"})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestGoogleLoginCreatesAndLinksUser(t *testing.T) {
	setup(t)
	repo := newFakeRepo()
	google := &fakeGoogle{identity: &GoogleIdentity{
		GoogleID:     "g-1",
		Email:        "bia@example.com",
		Name:         "Bia",
		AccessToken:  "access",
		RefreshToken: "refresh",
	}}
	svc := NewService(repo, google, &fakeProfiles{})

	first, err := svc.GoogleLogin(context.Background(), "code")
	require.NoError(t, err)

	stored, err := repo.GetByID(first.User.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, "access", stored.EncryptedGoogleAccessToken)
	plain, err := config.Decrypt(stored.EncryptedGoogleAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", plain)

	second, err := svc.GoogleLogin(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.users, 1)

	google.err = errors.New("bad code")
	_, err = svc.GoogleLogin(context.Background(), "code")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	setup(t)
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGoogle{}, nil)

	session, err := svc.SignUp(context.Background(), SignUpDTO{Name: "C", Email: "c@example.com", Password: "longenough"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh, "access tokens cannot refresh")
}

func TestDeleteAccount(t *testing.T) {
	setup(t)
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGoogle{}, &fakeProfiles{})

	session, err := svc.SignUp(context.Background(), SignUpDTO{Name: "Ana", Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAccount(context.Background()), ErrUnauthorized)

	ctx := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: session.User.ID.String(), Role: "user"})
	require.NoError(t, svc.DeleteAccount(ctx))
	assert.Empty(t, repo.users)

	_, err = svc.Me(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteAccount(ctx), ErrNotFound)
}

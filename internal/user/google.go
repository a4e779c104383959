package user

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type GoogleIdentity struct {
	GoogleID     string
	Email        string
	Name         string
	PictureURL   string
	AccessToken  string
	RefreshToken string
}

type GoogleIdentityProvider interface {
	Exchange(ctx context.Context, code string) (*GoogleIdentity, error)
}

type googleIdentityProvider struct {
	oauthConfig *oauth2.Config
}

func NewGoogleIdentityProvider(oauthConfig *oauth2.Config) GoogleIdentityProvider {
	return &googleIdentityProvider{oauthConfig: oauthConfig}
}

func (p *googleIdentityProvider) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	token, err := p.oauthConfig.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("exchange google code: %w", err)
	}

	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(p.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch google userinfo: %w", err)
	}

	return &GoogleIdentity{
		GoogleID:     info.Id,
		Email:        info.Email,
		Name:         info.Name,
		PictureURL:   info.Picture,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

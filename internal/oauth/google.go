package oauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"propertypulse/internal/config"
)

const googleIssuer = "https://accounts.google.com"

// Claims are the identity-provider profile fields the application consumes.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Provider is the sign-in side of the identity delegation: it produces a
// consent URL and turns a callback code into verified profile claims.
type Provider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*Claims, error)
}

// GoogleProvider implements Provider against Google's OIDC endpoint.
type GoogleProvider struct {
	verifier    *oidc.IDTokenVerifier
	oauthConfig *oauth2.Config
}

func NewGoogleProvider(ctx context.Context, cfg *config.Config) (*GoogleProvider, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.Google.ClientID})

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}

	return &GoogleProvider{verifier: verifier, oauthConfig: oauthConfig}, nil
}

// AuthURL returns the Google consent URL carrying the CSRF state.
func (g *GoogleProvider) AuthURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified ID token and
// extracts the profile claims.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*Claims, error) {
	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("token response is missing id_token")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("id_token verification failed: %w", err)
	}

	var claims struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token claims: %w", err)
	}

	return &Claims{
		Subject: claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Provider wraps a discovered OIDC issuer: its ID-token verifier and the
// oauth2.Config used to exchange an authorization code for tokens. One
// Provider is constructed per configured issuer, since account linkage
// is parametrized over provider.
type Provider struct {
	name     string
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
}

// NewProvider runs OIDC discovery against issuer and builds a Provider
// that verifies tokens for the given client. name is the provider label
// stored alongside the linked account.
func NewProvider(ctx context.Context, name, issuer, clientID, clientSecret, redirectURL string) (*Provider, error) {
	p, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, catalogerr.InternalError(fmt.Sprintf("discovering OIDC issuer %s", issuer), err)
	}
	return &Provider{
		name:     name,
		verifier: p.Verifier(&oidc.Config{ClientID: clientID}),
		oauth2: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     p.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// AuthCodeURL returns the redirect URL that starts the provider's
// authorization-code flow.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// ExchangeAndLink completes the authorization-code flow: exchanges code
// for tokens, verifies the returned ID token against the provider's keys,
// and links or creates the corresponding editor via AuthOIDC. This is the
// concrete server-to-server caller AuthOIDC's doc comment describes.
func (p *Provider) ExchangeAndLink(ctx context.Context, db *gorm.DB, keys *KeyRing, caller *models.Editor, code string) (*OIDCResult, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, catalogerr.InvalidCredentials("exchanging authorization code: " + err.Error())
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, catalogerr.InvalidCredentials("token response carried no id_token")
	}
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, catalogerr.InvalidCredentials("verifying id_token: " + err.Error())
	}

	var claims struct {
		Subject           string `json:"sub"`
		PreferredUsername string `json:"preferred_username"`
		Email             string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, catalogerr.InvalidCredentials("decoding id_token claims: " + err.Error())
	}
	preferred := claims.PreferredUsername
	if preferred == "" {
		preferred = claims.Email
	}

	return AuthOIDC(ctx, db, keys, caller, p.name, claims.Subject, preferred, idToken.Issuer)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var ErrNoIDToken = errors.New("auth: token response has no id_token")

// GoogleConfig is the OAuth client registration.
type GoogleConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	AllowedDomain string
}

// Exchange is the outcome of a successful code exchange.
type Exchange struct {
	IDToken string
	Tokens  map[string]string // forwarded to the account upsert
}

// Exchanger swaps an authorization code for tokens.
type Exchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Exchange, error)
}

// GoogleOAuth is the code flow against Google's endpoints.
type GoogleOAuth struct {
	cfg *oauth2.Config
	hd  string
}

func NewGoogleOAuth(c GoogleConfig) *GoogleOAuth {
	return &GoogleOAuth{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		hd: c.AllowedDomain,
	}
}

// AuthCodeURL passes the domain as the hd hint for Google's account picker.
func (g *GoogleOAuth) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("prompt", "select_account")}
	if g.hd != "" {
		opts = append(opts, oauth2.SetAuthURLParam("hd", g.hd))
	}
	return g.cfg.AuthCodeURL(state, opts...)
}

func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (Exchange, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Exchange{}, fmt.Errorf("auth: exchanging code: %w", err)
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return Exchange{}, ErrNoIDToken
	}

	tokens := map[string]string{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
		"id_token":     raw,
	}
	if tok.RefreshToken != "" {
		tokens["refresh_token"] = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		tokens["expires_at"] = strconv.FormatInt(tok.Expiry.Unix(), 10)
	}
	return Exchange{IDToken: raw, Tokens: tokens}, nil
}

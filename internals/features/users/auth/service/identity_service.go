package service

import (
	"errors"
	"fmt"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrEmailMissing     = errors.New("auth: google account has no email")
	ErrEmailNotVerified = errors.New("auth: google email is not verified")
	ErrDomainNotAllowed = errors.New("auth: email domain is not allowed")
	ErrInvalidIDToken   = errors.New("auth: invalid google id token")
)

// Identity is the part of a Google ID token the portal uses.
type Identity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	HostedDomain  string `json:"hd"`
}

// IDTokenVerifier checks a raw ID token and returns its identity.
type IDTokenVerifier interface {
	Verify(rawIDToken string) (Identity, error)
}

// GoogleVerifier checks signature, issuer, expiry and audience against
// Google's published certificates.
type GoogleVerifier struct {
	ClientID string
}

func (g GoogleVerifier) Verify(raw string) (Identity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(raw, []string{g.ClientID}); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	return DecodeIdentity(raw)
}

// DecodeIdentity reads the claims of an already verified token.
func DecodeIdentity(raw string) (Identity, error) {
	var claims identityClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	id := Identity{
		Subject:      claims.Subject,
		Email:        claims.Email,
		Name:         claims.Name,
		Picture:      claims.Picture,
		HostedDomain: claims.HostedDomain,
	}
	// Google sometimes sends email_verified as the string "true".
	switch v := claims.EmailVerified.(type) {
	case bool:
		id.EmailVerified = v
	case string:
		id.EmailVerified = strings.EqualFold(v, "true")
	}
	return id, nil
}

type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified any    `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	HostedDomain  string `json:"hd"`
	jwt.RegisteredClaims
}

// CheckIdentity admits verified emails of the allowed domain only.
func CheckIdentity(id Identity, allowedDomain string) error {
	email := strings.TrimSpace(id.Email)
	if email == "" {
		return ErrEmailMissing
	}
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ErrEmailMissing
	}
	allowed := strings.ToLower(strings.TrimSpace(allowedDomain))
	if allowed == "" {
		allowed = "example.com"
	}
	if strings.ToLower(email[at+1:]) != allowed {
		return ErrDomainNotAllowed
	}
	if !id.EmailVerified {
		return ErrEmailNotVerified
	}
	return nil
}

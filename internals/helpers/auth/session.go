package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	SessionCookie = "schooler_session"
	SessionTTL    = 30 * 24 * time.Hour
	APITokenTTL   = 5 * time.Minute
)

var ErrInvalidSession = errors.New("auth: invalid session")

// Session is what the portal remembers about a signed-in user.
type Session struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Image  string `json:"picture,omitempty"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and parses HS256 tokens for sessions and API calls.
type Signer struct {
	keys Keys
	now  func() time.Time
}

func NewSigner(keys Keys) *Signer {
	return &Signer{keys: keys, now: time.Now}
}

// IssueSession signs the session cookie value.
func (s *Signer) IssueSession(sess Session) (string, time.Time, error) {
	exp := s.now().Add(SessionTTL)
	tok, err := s.sign(s.keys.Session, sess, "schooler", exp)
	return tok, exp, err
}

// ParseSession verifies a cookie value and returns its session.
func (s *Signer) ParseSession(raw string) (Session, error) {
	return s.parse(s.keys.Session, raw, "schooler")
}

// APIToken mints a short-lived bearer token for the school API.
func (s *Signer) APIToken(sess Session) (string, error) {
	return s.sign(s.keys.API, sess, "schooler-api", s.now().Add(APITokenTTL))
}

// ParseAPIToken is the API-side check, used by tests and stub servers.
func (s *Signer) ParseAPIToken(raw string) (Session, error) {
	return s.parse(s.keys.API, raw, "schooler-api")
}

func (s *Signer) sign(key []byte, sess Session, audience string, exp time.Time) (string, error) {
	if len(key) == 0 {
		return "", ErrNoSecret
	}
	now := s.now()
	claims := sessionClaims{
		Email: sess.Email,
		Name:  sess.Name,
		Image: sess.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func (s *Signer) parse(key []byte, raw, audience string) (Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Session{}, ErrInvalidSession
	}
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !tok.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyAudience(audience, true) {
		return Session{}, fmt.Errorf("%w: expired or wrong audience", ErrInvalidSession)
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Email) == "" {
		return Session{}, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	return Session{UserID: claims.Subject, Email: claims.Email, Name: claims.Name, Image: claims.Image}, nil
}

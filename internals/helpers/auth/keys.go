package helper

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var ErrNoSecret = errors.New("auth: JWT_SECRET is empty")

// Keys are the per-purpose HMAC keys derived from JWT_SECRET.
type Keys struct {
	Session []byte // signs the session cookie
	API     []byte // signs bearer tokens forwarded to the school API
}

// DeriveKeys expands secret with HKDF-SHA256, one info label per purpose.
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, ErrNoSecret
	}
	session, err := expand(secret, "schooler/session/v1")
	if err != nil {
		return Keys{}, err
	}
	api, err := expand(secret, "schooler/api-bearer/v1")
	if err != nil {
		return Keys{}, err
	}
	return Keys{Session: session, API: api}, nil
}

func expand(secret, info string) ([]byte, error) {
	out := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

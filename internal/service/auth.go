package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) bool
}

// StaticAuthenticator accepts exactly one username/password pair. It stands
// in for a real identity provider and is not meant to be hardened.
type StaticAuthenticator struct {
	Username     string
	PasswordHash string
}

func NewStaticAuthenticator(username, password string) (*StaticAuthenticator, error) {
	h, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &StaticAuthenticator{Username: username, PasswordHash: h}, nil
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) bool {
	l := logging.FromContext(ctx).With("svc", "auth.static")

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := hash.CheckPassword(a.PasswordHash, password)
	if !userOK || !passOK {
		l.Warn("login_failed", "username", username)
		return false
	}
	return true
}

package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AdminCookie = "adminToken"
	RoleAdmin   = "admin"
	AdminTTL    = 8 * time.Hour
)

var ErrNotAdmin = errors.New("not an admin token")

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func SignAdmin(username string, secret []byte, now time.Time) (string, time.Time, error) {
	exp := now.Add(AdminTTL)
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, exp, nil
}

// ParseAdmin returns the claims of a valid, unexpired HS256 token carrying the
// admin role. Any other token yields an error wrapping ErrNotAdmin.
func ParseAdmin(tokenStr string, secret []byte) (*AdminClaims, error) {
	var claims AdminClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrNotAdmin, err)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: role %q", ErrNotAdmin, claims.Role)
	}
	return &claims, nil
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthenticator(t *testing.T) {
	auth, err := NewStaticAuthenticator("admin", "admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", auth.PasswordHash)

	ctx := context.Background()
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "valid", username: "admin", password: "admin123", want: true},
		{name: "valid with surrounding spaces", username: " admin ", password: "admin123 ", want: true},
		{name: "wrong password", username: "admin", password: "wrong", want: false},
		{name: "wrong username", username: "root", password: "admin123", want: false},
		{name: "empty", username: "", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Authenticate(ctx, tt.username, tt.password))
		})
	}
}

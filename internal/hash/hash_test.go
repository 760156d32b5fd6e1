package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", h)

	assert.True(t, CheckPassword(h, "admin123"))
	assert.False(t, CheckPassword(h, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "admin123"))
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	// social-only accounts have no password hash and must never verify
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("", "anything"))
}

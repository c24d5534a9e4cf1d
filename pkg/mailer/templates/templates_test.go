package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResetPassword(t *testing.T) {
	subject, text, html, err := Render(ResetPassword, map[string]any{
		"Name":      "Ada",
		"ResetURL":  "https://app.inkwell.dev/reset-password/tok123",
		"ExpiresAt": time.Now().Add(15 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "Password Reset Request", subject)
	assert.Contains(t, text, "tok123")
	assert.Contains(t, html, "tok123")
	assert.Contains(t, html, "Ada")
}

func TestRenderWelcome(t *testing.T) {
	_, text, html, err := Render(Welcome, map[string]any{
		"Name":        "Ada",
		"FrontendURL": "https://app.inkwell.dev",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Ada")
	assert.Contains(t, html, "https://app.inkwell.dev")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}

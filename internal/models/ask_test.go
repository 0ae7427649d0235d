package models_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cotillion/backend/internal/models"
)

// TestAskBeforeCreate_Defaults verifies the uuid hook and the pending default.
func TestAskBeforeCreate_Defaults(t *testing.T) {
	// Arrange
	ask := &models.Ask{FromUserID: "girl-1", ToUserID: "guy-1"}

	// Act
	err := ask.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, ask.ID)
	_, parseErr := uuid.Parse(ask.ID)
	assert.NoError(t, parseErr, "Ask ID must be a valid UUID string")
	assert.Equal(t, models.AskPending, ask.Status, "New asks default to pending")
}

// TestAskBeforeCreate_PreservesStatus verifies an explicit status is kept.
func TestAskBeforeCreate_PreservesStatus(t *testing.T) {
	ask := &models.Ask{FromUserID: "girl-1", ToUserID: "guy-1", Status: models.AskDeclined}

	err := ask.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.AskDeclined, ask.Status)
}

// TestAskStatusResolved verifies that only pending is non-terminal.
func TestAskStatusResolved(t *testing.T) {
	assert.False(t, models.AskPending.Resolved())
	assert.True(t, models.AskAccepted.Resolved())
	assert.True(t, models.AskDeclined.Resolved())
	assert.True(t, models.AskCanceled.Resolved())
	assert.True(t, models.AskSuperseded.Resolved())
}

// TestTruncateMessage verifies silent clipping at 280 characters.
func TestTruncateMessage(t *testing.T) {
	assert.Equal(t, "Hi", models.TruncateMessage("Hi"))
	assert.Equal(t, "", models.TruncateMessage(""))

	exact := strings.Repeat("x", 280)
	assert.Equal(t, exact, models.TruncateMessage(exact))

	long := strings.Repeat("x", 300)
	assert.Equal(t, exact, models.TruncateMessage(long), "Overlong messages are clipped, not rejected")

	// Multi-byte runes are counted as characters, not bytes.
	wide := strings.Repeat("é", 300)
	assert.Equal(t, 280, len([]rune(models.TruncateMessage(wide))))
}

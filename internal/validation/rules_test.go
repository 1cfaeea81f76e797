package validation_test

import (
	"testing"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	valid := []string{"alice", "alice.bob", "a_b-c", "user@host", "a+b", "A1"}
	for _, username := range valid {
		assert.True(t, validation.ValidUsername(username), "expected %q to be valid", username)
	}

	invalid := []string{"", "alice bob", "alice!", "日本語", "a/b", "a#b"}
	for _, username := range invalid {
		assert.False(t, validation.ValidUsername(username), "expected %q to be invalid", username)
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"too short", "Pw0!", "at least 8 characters"},
		{"no uppercase", "passw0rd!", "uppercase letter"},
		{"no lowercase", "PASSW0RD!", "lowercase letter"},
		{"no digit", "Password!", "digit"},
		{"no special", "Passw0rd", "special character"},
		{"valid", "Passw0rd!", ""},
		{"valid with other special", "Secur3{pass}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.CheckPassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestValidTagID(t *testing.T) {
	assert.True(t, validation.ValidTagID("2b880986-5fa2-42d1-b582-f4a3b0875be8"))

	// Only the canonical lowercase hyphenated form counts as well-formed
	invalid := []string{
		"",
		"not-a-uuid",
		"2B880986-5FA2-42D1-B582-F4A3B0875BE8",
		"{2b880986-5fa2-42d1-b582-f4a3b0875be8}",
		"2b8809865fa242d1b582f4a3b0875be8",
		"urn:uuid:2b880986-5fa2-42d1-b582-f4a3b0875be8",
	}
	for _, id := range invalid {
		assert.False(t, validation.ValidTagID(id), "expected %q to be invalid", id)
	}
}

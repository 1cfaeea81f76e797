package validation

import (
	"regexp"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
)

var (
	usernameRegex        = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)
	tagIDRegex           = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	passwordUpperRegex   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRegex   = regexp.MustCompile(`[a-z]`)
	passwordDigitRegex   = regexp.MustCompile(`[0-9]`)
	passwordSpecialRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidUsername reports whether the username contains only letters, digits
// and @/./+/-/_ characters.
func ValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidTagID reports whether the id is a canonical lowercase hyphenated
// UUID. Looser spellings (uppercase, braced, un-hyphenated, urn prefixed)
// are rejected as malformed rather than looked up.
func ValidTagID(id string) bool {
	return tagIDRegex.MatchString(id)
}

// CheckPassword enforces the password composition policy: at least 8
// characters with an uppercase letter, a lowercase letter, a digit and a
// special character. The first failing rule wins.
func CheckPassword(password string) error {
	if len(password) < 8 {
		return apperrors.Validation("password must be at least 8 characters long")
	}
	if !passwordUpperRegex.MatchString(password) {
		return apperrors.Validation("password must contain at least one uppercase letter")
	}
	if !passwordLowerRegex.MatchString(password) {
		return apperrors.Validation("password must contain at least one lowercase letter")
	}
	if !passwordDigitRegex.MatchString(password) {
		return apperrors.Validation("password must contain at least one digit")
	}
	if !passwordSpecialRegex.MatchString(password) {
		return apperrors.Validation("password must contain at least one special character")
	}
	return nil
}

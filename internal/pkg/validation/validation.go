package validation

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Names: letters, spaces, hyphens, apostrophes.
var nameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters with a letter, a digit and a
// special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidName(name string) bool {
	return name != "" && nameRe.MatchString(name)
}

// File: internal/user/email.go
package user

import (
	"fmt"
	"regexp"
	"strings"

	"nopea_backend/internal/common"
)

const maxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Email is the validated identity of an account. Compared by value.
type Email struct {
	value string
}

// NewEmail validates the raw address and returns the value object, or an
// INVALID_ARGUMENT error naming the violated rule.
func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, common.NewInvalidArgumentError("Email cannot be blank")
	}
	if len(raw) > maxEmailLength {
		return Email{}, common.NewInvalidArgumentError(fmt.Sprintf("Email cannot exceed %d characters", maxEmailLength))
	}
	if !emailPattern.MatchString(raw) {
		return Email{}, common.NewInvalidArgumentError("Email must be a valid email address")
	}
	return Email{value: raw}, nil
}

// String returns the address unchanged.
func (e Email) String() string {
	return e.value
}

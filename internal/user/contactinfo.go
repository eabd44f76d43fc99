// File: internal/user/contactinfo.go
package user

import (
	"regexp"
	"strings"

	"nopea_backend/internal/common"
)

// Phone numbers are international format: optional leading "+", first digit
// 1-9, then 2-14 further digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{2,14}$`)

// ContactInfo holds the account holder's name and phone number.
type ContactInfo struct {
	firstName   string
	lastName    string
	phoneNumber string
}

// NewContactInfo validates the fields and returns the value object, or an
// INVALID_ARGUMENT error naming the violated rule.
func NewContactInfo(firstName, lastName, phoneNumber string) (ContactInfo, error) {
	if strings.TrimSpace(firstName) == "" {
		return ContactInfo{}, common.NewInvalidArgumentError("First name cannot be blank")
	}
	if strings.TrimSpace(lastName) == "" {
		return ContactInfo{}, common.NewInvalidArgumentError("Last name cannot be blank")
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return ContactInfo{}, common.NewInvalidArgumentError("Phone number cannot be blank")
	}
	if !phonePattern.MatchString(phoneNumber) {
		return ContactInfo{}, common.NewInvalidArgumentError("Phone number must be in valid international format")
	}
	return ContactInfo{firstName: firstName, lastName: lastName, phoneNumber: phoneNumber}, nil
}

func (c ContactInfo) FirstName() string { return c.firstName }

func (c ContactInfo) LastName() string { return c.lastName }

func (c ContactInfo) PhoneNumber() string { return c.phoneNumber }

// FormattedPhone guarantees a leading "+".
func (c ContactInfo) FormattedPhone() string {
	if strings.HasPrefix(c.phoneNumber, "+") {
		return c.phoneNumber
	}
	return "+" + c.phoneNumber
}

// FullName joins first and last name.
func (c ContactInfo) FullName() string {
	return c.firstName + " " + c.lastName
}

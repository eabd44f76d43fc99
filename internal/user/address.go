// File: internal/user/address.go
package user

import (
	"fmt"
	"regexp"
	"strings"

	"nopea_backend/internal/common"
)

// Country is fixed: this marketplace only operates in Finland, so the country
// is never user-supplied.
const Country = "Finland"

var finnishPostalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// Address is a Finnish street address.
type Address struct {
	street     string
	city       string
	postalCode string
}

// NewAddress validates the fields and returns the value object, or an
// INVALID_ARGUMENT error naming the violated rule.
func NewAddress(street, city, postalCode string) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, common.NewInvalidArgumentError("Street address cannot be blank")
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, common.NewInvalidArgumentError("City cannot be blank")
	}
	if strings.TrimSpace(postalCode) == "" {
		return Address{}, common.NewInvalidArgumentError("Postal code cannot be blank")
	}
	if !finnishPostalCodePattern.MatchString(postalCode) {
		return Address{}, common.NewInvalidArgumentError("Invalid Finnish postal code format")
	}
	return Address{street: street, city: city, postalCode: postalCode}, nil
}

func (a Address) Street() string { return a.street }

func (a Address) City() string { return a.city }

func (a Address) PostalCode() string { return a.postalCode }

// FullAddress returns "{street}, {city}, {postalCode}, Finland".
func (a Address) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.street, a.city, a.postalCode, Country)
}

// IsInFinland is always true by construction; the country is not a free
// parameter.
func (a Address) IsInFinland() bool {
	return true
}

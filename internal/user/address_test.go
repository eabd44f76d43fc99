// File: internal/user/address_test.go
package user

import (
	"testing"

	"nopea_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress_Valid(t *testing.T) {
	addr, err := NewAddress("Mannerheimintie 12", "Helsinki", "00100")
	require.NoError(t, err)

	assert.Equal(t, "Mannerheimintie 12", addr.Street())
	assert.Equal(t, "Helsinki", addr.City())
	assert.Equal(t, "00100", addr.PostalCode())
	assert.True(t, addr.IsInFinland())
}

func TestNewAddress_BlankFields(t *testing.T) {
	tests := []struct {
		name                     string
		street, city, postalCode string
	}{
		{"blank street", "", "Helsinki", "00100"},
		{"whitespace street", "   ", "Helsinki", "00100"},
		{"blank city", "Mannerheimintie 12", "", "00100"},
		{"blank postal code", "Mannerheimintie 12", "Helsinki", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.street, tt.city, tt.postalCode)
			require.Error(t, err)
			assert.True(t, common.IsInvalidArgument(err))
		})
	}
}

func TestNewAddress_PostalCodeFormat(t *testing.T) {
	valid := []string{"00100", "33100", "99999", "00001"}
	for _, code := range valid {
		t.Run("valid "+code, func(t *testing.T) {
			_, err := NewAddress("Hämeenkatu 1", "Tampere", code)
			assert.NoError(t, err)
		})
	}

	invalid := []string{"0010", "001000", "0010a", "ABCDE", "00 10", "00100-", "001-00"}
	for _, code := range invalid {
		t.Run("invalid "+code, func(t *testing.T) {
			_, err := NewAddress("Hämeenkatu 1", "Tampere", code)
			require.Error(t, err)
			assert.True(t, common.IsInvalidArgument(err))
		})
	}
}

func TestAddress_FullAddress(t *testing.T) {
	addr, err := NewAddress("Mannerheimintie 12", "Helsinki", "00100")
	require.NoError(t, err)

	assert.Equal(t, "Mannerheimintie 12, Helsinki, 00100, Finland", addr.FullAddress())
}

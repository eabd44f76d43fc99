// File: internal/user/email_test.go
package user

import (
	"strings"
	"testing"

	"nopea_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_ValidAddressesRoundTrip(t *testing.T) {
	valid := []string{
		"test@example.com",
		"user.name@domain.fi",
		"user+tag@sub.domain.co",
		"first_last@company.org",
		"a@b.io",
	}
	for _, raw := range valid {
		t.Run(raw, func(t *testing.T) {
			email, err := NewEmail(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, email.String())
		})
	}
}

func TestNewEmail_InvalidAddresses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"blank", ""},
		{"whitespace only", "   "},
		{"missing at sign", "testexample.com"},
		{"missing domain", "test@"},
		{"missing local part", "@example.com"},
		{"domain without tld", "test@example"},
		{"single letter tld", "test@example.c"},
		{"too long", strings.Repeat("a", 250) + "@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmail(tt.raw)
			require.Error(t, err)
			assert.True(t, common.IsInvalidArgument(err))
		})
	}
}

func TestEmail_ValueSemantics(t *testing.T) {
	a, err := NewEmail("same@example.com")
	require.NoError(t, err)
	b, err := NewEmail("same@example.com")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

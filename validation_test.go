package authpages_test

import (
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "ada.lovelace@example.co.uk", "x+tag@host.io"}
	invalid := []string{"", "a@b", "a b@c.com", "@b.com", "a@.", "a@b c.com", "plain"}

	for _, email := range valid {
		assert.True(t, authpages.IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, authpages.IsValidEmail(email), email)
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password string
		want     authpages.PasswordRequirements
	}{
		{"abc", authpages.PasswordRequirements{Lowercase: true}},
		{"Abcdefg1", authpages.PasswordRequirements{Length: true, Uppercase: true, Lowercase: true, Number: true}},
		{"ALLCAPS1", authpages.PasswordRequirements{Length: true, Uppercase: true, Number: true}},
		{"alllower1", authpages.PasswordRequirements{Length: true, Lowercase: true, Number: true}},
		{"NoNumber", authpages.PasswordRequirements{Length: true, Uppercase: true, Lowercase: true}},
		{"", authpages.PasswordRequirements{}},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := authpages.CheckPassword(tt.password)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Met(), authpages.IsValidPassword(tt.password))
		})
	}
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		pwd  string
		want bool
	}{
		{pwd: "Abcdef1!", want: true},
		{pwd: "Abcdef1*", want: true},
		{pwd: "P@ssw0rdLong", want: true},
		{pwd: "abcdef1", want: false},   // too short, no upper, no symbol
		{pwd: "abcdef1!", want: false},  // no upper
		{pwd: "Abcdefg!", want: false},  // no digit
		{pwd: "Abcdefg1", want: false},  // no symbol
		{pwd: "Abcdef1!#", want: false}, // symbol outside the allowed set
		{pwd: "Abc def1!", want: false}, // whitespace
		{pwd: "Ab1!", want: false},      // too short
		{pwd: "", want: false},
	}
	for _, tt := range tests {
		if got := IsStrongPassword(tt.pwd); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.pwd, got, tt.want)
		}
	}
}

func TestIsEmailOrPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "a@b.com", want: true},
		{in: "1234567890", want: true},
		{in: "12345", want: false},
		{in: "12345678901", want: false},
		{in: "a@b", want: false},
		{in: "a b@c.com", want: false},
		{in: "", want: false},
	}
	for _, tt := range tests {
		if got := IsEmailOrPhone(tt.in); got != tt.want {
			t.Errorf("IsEmailOrPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidator_Struct(t *testing.T) {
	type form struct {
		Login    string `json:"login" validate:"email_or_phone"`
		Password string `json:"password" validate:"pwdpolicy"`
		Name     string `json:"name" validate:"notblank"`
	}
	v := NewValidator()

	assert.NoError(t, v.Struct(form{Login: "a@b.com", Password: "Abcdef1!", Name: "Ada"}))

	err := v.Struct(form{Login: "12345", Password: "abcdef1", Name: " "})
	if !IsValidationError(err) {
		t.Fatalf("v.Struct() error = %v, want *ValidationError", err)
	}
	vErr := err.(*ValidationError)
	fields := make([]string, 0, len(vErr.Fields))
	for _, fe := range vErr.Fields {
		fields = append(fields, fe.Field)
		assert.NotEmpty(t, fe.Error)
	}
	assert.ElementsMatch(t, []string{"login", "password", "name"}, fields)
}

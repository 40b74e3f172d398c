package validation

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "user@example.com", want: true},
		{input: "  first.last+tag@mail.example.org  ", want: true},
		{input: "a_b%c-d@sub.domain.io", want: true},
		{input: "", want: false},
		{input: "   ", want: false},
		{input: "no-at-sign.com", want: false},
		{input: "user@nodot", want: false},
		{input: "user@example.c", want: false},
		{input: "user@example.c0m", want: false},
		{input: "us er@example.com", want: false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.input); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "11 digits", input: "13800138000", want: true},
		{name: "11 digits padded", input: " 13800138000 ", want: true},
		{name: "numeric input", input: int64(13800138000), want: true},
		{name: "10 digits", input: "1380013800", want: false},
		{name: "12 digits", input: "138001380001", want: false},
		{name: "contains dash", input: "138-0013800", want: false},
		{name: "contains letter", input: "1380013800a", want: false},
		{name: "leading plus", input: "+3800138000", want: false},
		{name: "empty", input: "", want: false},
		{name: "nil", input: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPhone(tt.input); got != tt.want {
				t.Errorf("IsValidPhone(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone_AllElevenDigitNumerals(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		phone := strings.Repeat(string(d), 11)
		if !IsValidPhone(phone) {
			t.Errorf("IsValidPhone(%q) = false, want true", phone)
		}
	}
	for n := 0; n <= 15; n++ {
		if n == 11 {
			continue
		}
		phone := strings.Repeat("1", n)
		if IsValidPhone(phone) {
			t.Errorf("IsValidPhone(%q) = true for length %d", phone, n)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "eight chars with letters", input: "abcd1234", want: true},
		{name: "long mixed", input: "correct horse battery", want: true},
		{name: "single letter is enough", input: "1234567a", want: true},
		{name: "seven chars with letters", input: "abc1234", want: false},
		{name: "ten digits only", input: "1234567890", want: false},
		{name: "padding does not count", input: "  abc12  ", want: false},
		{name: "non-ascii letters do not count", input: "密码密码12345678", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPassword(tt.input); got != tt.want {
				t.Errorf("IsValidPassword(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "#802520", want: true},
		{input: "#aBcDeF", want: true},
		{input: " #5C7F71 ", want: true},
		{input: "#fff", want: false},
		{input: "802520", want: false},
		{input: "#80252G", want: false},
		{input: "#8025201", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		if got := IsHexColor(tt.input); got != tt.want {
			t.Errorf("IsHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

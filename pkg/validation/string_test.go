package validation

import "testing"

func TestTrimValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "string with spaces", input: "  hello  ", want: "hello"},
		{name: "tabs and newlines", input: "\t a b \n", want: "a b"},
		{name: "non-string int", input: 42, want: 42},
		{name: "nil", input: nil, want: nil},
		{name: "bool", input: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimValue(tt.input)
			if got != tt.want {
				t.Errorf("TrimValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNonEmpty(t *testing.T) {
	var nilString *string
	value := "  x "

	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "nil", input: nil, want: false},
		{name: "nil string pointer", input: nilString, want: false},
		{name: "empty string", input: "", want: false},
		{name: "only whitespace", input: "   \t", want: false},
		{name: "text", input: "a", want: true},
		{name: "string pointer", input: &value, want: true},
		{name: "zero is non-empty", input: 0, want: true},
		{name: "float", input: 1.5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNonEmpty(tt.input); got != tt.want {
				t.Errorf("IsNonEmpty(%#v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		min     int
		max     int
		wantMin bool
		wantMax bool
	}{
		{name: "exactly at bounds", input: "ab", min: 2, max: 2, wantMin: true, wantMax: true},
		{name: "padding is trimmed", input: "  a  ", min: 2, max: 1, wantMin: false, wantMax: true},
		{name: "nil counts as empty", input: nil, min: 1, max: 0, wantMin: false, wantMax: true},
		{name: "multibyte counts runes", input: "任务", min: 2, max: 2, wantMin: true, wantMax: true},
		{name: "over max", input: "abcdef", min: 0, max: 5, wantMin: true, wantMax: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMinLength(tt.input, tt.min); got != tt.wantMin {
				t.Errorf("IsMinLength(%v, %d) = %v, want %v", tt.input, tt.min, got, tt.wantMin)
			}
			if got := IsMaxLength(tt.input, tt.max); got != tt.wantMax {
				t.Errorf("IsMaxLength(%v, %d) = %v, want %v", tt.input, tt.max, got, tt.wantMax)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{input: nil, want: ""},
		{input: "abc", want: "abc"},
		{input: 7, want: "7"},
		{input: int64(-3), want: "-3"},
		{input: uint8(9), want: "9"},
		{input: 1.0, want: "1"},
		{input: 2.5, want: "2.5"},
		{input: false, want: "false"},
	}

	for _, tt := range tests {
		if got := Stringify(tt.input); got != tt.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

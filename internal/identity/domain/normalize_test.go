package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A@X.com", "a@x.com"},
		{"  user@Example.COM  ", "user@example.com"},
		{"already@lower.th", "already@lower.th"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+66 80-000-0000", "+66800000000"},
		{"080 000 0000", "0800000000"},
		{"(081) 234-5678", "0812345678"},
		{"+66(0)81234", "+66081234"},
		{"66+80", "6680"}, // '+' не в начале отбрасывается
		{"+", ""},
		{"abc", ""},
		{"", ""},
		{"  +66 1 ", "+661"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

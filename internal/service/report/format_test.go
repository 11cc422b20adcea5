package report

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0,00"},
		{5, "5,00"},
		{116.22, "116,22"},
		{1234.5, "1.234,50"},
		{1234567.89, "1.234.567,89"},
		{-55.38, "-55,38"},
		{-1234.5, "-1.234,50"},
		{999.999, "1.000,00"},
	}

	for _, tt := range tests {
		if got := formatCurrency(tt.value); got != tt.want {
			t.Errorf("formatCurrency(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"moradia", "Moradia"},
		{"alimentação", "Alimentação"},
		{"água", "Água"},
		{"Lazer", "Lazer"},
	}

	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Sea View Loft  ", "Sea View Loft"},
		{"multiple spaces between words", "Sea    View", "Sea View"},
		{"tabs and newlines", "Sea\t\nView", "Sea View"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Café & Spa™ ", "Café & Spa™"},
		{"non latin", " Ünïcödé  Straße ", "Ünïcödé Straße"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ada.Lovelace@Example.COM "); got != "ada.lovelace@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeMultiline(t *testing.T) {
	got := NormalizeMultiline("\n  Bright   flat \r\n\n with  balcony  \n")
	want := "Bright flat\n\nwith balcony"
	if got != want {
		t.Errorf("NormalizeMultiline() = %q, want %q", got, want)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already E.164", "+972541234567", "+972541234567"},
		{"with spaces", "+972 54 123 4567", "+972541234567"},
		{"with dashes", "+972-54-123-4567", "+972541234567"},
		{"with parentheses", "+1 (212) 555-1234", "+12125551234"},
		{"surrounding spaces", "  +12125551234  ", "+12125551234"},
		{"empty", "", ""},
		{"national format kept for the validator", "054-123-4567", "054-123-4567"},
		{"garbage kept for the validator", "+abc", "+abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFacilities(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"trim and collapse", []string{" Wi-Fi ", "Air   conditioning"}, []string{"Wi-Fi", "Air conditioning"}},
		{"case insensitive duplicates keep first", []string{"Pool", "pool", "POOL"}, []string{"Pool"}},
		{"drop empties", []string{"", "  ", "Parking"}, []string{"Parking"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFacilities(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeFacilities(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

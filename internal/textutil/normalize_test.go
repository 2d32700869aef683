package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii unchanged", "Biedronka 42", "Biedronka 42"},
		{"lowercase diacritics", "ąćęłńóśźż", "acelnoszz"},
		{"uppercase diacritics", "ĄĆĘŁŃÓŚŹŻ", "ACELNOSZZ"},
		{"mixed vendor name", "Żabka Łódź", "Zabka Lodz"},
		{"unknown runes pass through", "Crédit Müller €", "Crédit Müller €"},
		{"punctuation and digits", "PKO BP S.A. 123,45", "PKO BP S.A. 123,45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package textutil

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits",
			text: "Mobile Crane Rental",
			want: []string{"mobile", "crane", "rental"},
		},
		{
			name: "collapses whitespace runs",
			text: "  heavy \t\n  excavator  ",
			want: []string{"heavy", "excavator"},
		},
		{
			name: "cyrillic input",
			text: "Аренда Крана",
			want: []string{"аренда", "крана"},
		},
		{
			name: "empty string",
			text: "",
			want: []string{},
		},
		{
			name: "blank string",
			text: "   \t  ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Mobile  Crane\tRental "); got != "mobile crane rental" {
		t.Errorf("Normalize() = %q, want %q", got, "mobile crane rental")
	}
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
}

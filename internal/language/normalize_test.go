package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "fr", want: "fr"},
		{name: "uppercase", in: "FR", want: "fr"},
		{name: "underscore separator", in: "fr_CA", want: "fr-ca"},
		{name: "dash separator", in: "pt-BR", want: "pt-br"},
		{name: "surrounding whitespace", in: "  de ", want: "de"},
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
		{name: "digits rejected", in: "fr1", want: ""},
		{name: "punctuation rejected", in: "fr;drop", want: ""},
		{name: "empty subtags collapsed", in: "fr--ca", want: "fr-ca"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTag(tc.in); got != tc.want {
				t.Fatalf("NormalizeTag(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "fr", want: "fr"},
		{in: "fr-CA", want: "fr"},
		{in: "fr_CA", want: "fr"},
		{in: "EN", want: "en"},
		{in: "", want: ""},
		{in: "12", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeCode(tc.in); got != tc.want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

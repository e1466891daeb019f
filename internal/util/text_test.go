package util

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "nbsp", input: "Lab\u00a0de\u202fFísica", want: "Lab de Física"},
		{name: "dashes", input: "I \u2013 CIÊNCIAS \u2014 EXATAS", want: "I - CIÊNCIAS - EXATAS"},
		{name: "quotes", input: "\u201cLab\u201d d\u2019água", want: `"Lab" d'água`},
		{name: "plain", input: "nothing to do", want: "nothing to do"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanText(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := CleanText(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestJoinHyphenated(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "line break", input: "separa-\nda", want: "separada"},
		{name: "space", input: "pesqui- sadores", want: "pesquisadores"},
		{name: "accented", input: "eletrô-\nnica", want: "eletrônica"},
		{name: "chain", input: "a- b- c", want: "abc"},
		{name: "uppercase continuation kept", input: "Sistemas-\nLSE", want: "Sistemas-\nLSE"},
		{name: "compound word kept", input: "micro-ondas", want: "micro-ondas"},
		{name: "no hyphen", input: "texto sem quebra", want: "texto sem quebra"},
		{name: "empty", input: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := JoinHyphenated(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := JoinHyphenated(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Laboratório de Robótica ÇÃO"); got != "laboratorio de robotica cao" {
		t.Fatalf("got %q", got)
	}
}

func TestNameKey(t *testing.T) {
	if NameKey("  Lab  de\tSoftware ") != NameKey("LAB DE SOFTWARE") {
		t.Fatalf("keys differ")
	}
}

package ml

import "testing"

func TestNormalizeLocation(t *testing.T) {
	cases := map[string]string{
		"Indira Nagar":             "indira nagar",
		"  1st  Phase\tJP Nagar ": "1st phase jp nagar",
		"ELECTRONIC CITY":          "electronic city",
		"Café Street":              "café street",
		"":                         "",
	}
	for in, want := range cases {
		if got := NormalizeLocation(in); got != want {
			t.Fatalf("NormalizeLocation(%q) = %q, want %q", in, got, want)
		}
	}
}

package ml

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLocation folds a location name into its index key: NFC, collapsed
// whitespace, lower case.
func NormalizeLocation(name string) string {
	name = strings.Join(strings.Fields(norm.NFC.String(name)), " ")
	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Lower(language.Und).String(name)
}

// Package format renders operator-entered words for line item and gem descriptions.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title collapses runs of whitespace and capitalises each word, lowering the rest.
// A Caser keeps state, so one is built per call.
func Title(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}

package store

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldKey produces the comparison key for attribute matching: NFC
// normalization followed by lower-casing. Two values that render the
// same after unicode normalization compare equal regardless of case,
// so a search for "engineer" finds "Engineer" and a name typed with
// combining characters matches its precomposed form.
func foldKey(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Package naming holds the identifier rules used when turning catalog names
// into declaration names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// ToIdentifier converts a delimiter separated word such as "status_type"
// into PascalCase ("StatusType").
func ToIdentifier(word string) string {
	segments := strings.FieldsFunc(word, isSeparator)

	var sb strings.Builder
	for _, seg := range segments {
		r, size := utf8.DecodeRuneInString(seg)
		if r == utf8.RuneError && size == 1 {
			// not UTF-8 (e.g. a SQL_ASCII catalog); keep the bytes as they are
			sb.WriteString(seg)
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(seg[size:])
	}
	return sb.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}
	return false
}

// Singularize applies the fixed suffix rules in order:
// "ies" -> "y", "es" -> "y", trailing "s" dropped, otherwise unchanged.
//
// The "es" rule is wrong for most English plurals ("boxes" becomes "boxy")
// and existing generated files depend on it. Use ModeInflect for real
// English singulars.
func Singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "es"):
		return strings.TrimSuffix(word, "es") + "y"
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}

// Singularizer turns a table name into its singular form.
type Singularizer func(word string) string

const (
	ModeLegacy  = "legacy"
	ModeInflect = "inflect"
)

// SingularizerFor returns the singularizer registered under mode. Unknown
// modes report ok=false.
func SingularizerFor(mode string) (s Singularizer, ok bool) {
	switch mode {
	case "", ModeLegacy:
		return Singularize, true
	case ModeInflect:
		return inflect.Singularize, true
	}
	return nil, false
}

// RecordName is the declaration name for a table.
func RecordName(table string, singular Singularizer) string {
	if singular == nil {
		singular = Singularize
	}
	return ToIdentifier(singular(table))
}

package vocab

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips diacritics and applies full Unicode case folding, so that
// "Übung", "ubung" and "UBUNG" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Matches reports whether e matches the free-text query. Headword,
// translation and tag names are always checked; other fields depend on
// the grammatical type. A blank query matches every entry.
func Matches(e *Entry, query string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range searchFields(e) {
		if field != "" && strings.Contains(Fold(field), q) {
			return true
		}
	}
	return false
}

func searchFields(e *Entry) []string {
	fields := []string{e.German, e.English}
	switch e.Type {
	case Noun:
		fields = append(fields, e.Plural)
		if e.Gender != nil {
			fields = append(fields, e.Gender.String())
		}
	case Verb:
		if !e.IsRegular {
			fields = append(fields, e.Present, e.Imperfect, e.PastParticiple)
		}
	case Adjective:
		if !e.IsRegular {
			fields = append(fields, e.Comparative)
		}
	}
	for _, t := range e.Tags {
		fields = append(fields, t.String())
	}
	return fields
}

package vocab

import (
	"fmt"
	"strings"
)

// GrammaticalType is the part-of-speech classification of an entry.
type GrammaticalType string

const (
	Noun         GrammaticalType = "Noun"
	Verb         GrammaticalType = "Verb"
	Adjective    GrammaticalType = "Adjective"
	Adverb       GrammaticalType = "Adverb"
	Pronoun      GrammaticalType = "Pronoun"
	Preposition  GrammaticalType = "Preposition"
	Conjunction  GrammaticalType = "Conjunction"
	Interjection GrammaticalType = "Interjection"
)

var grammaticalTypes = []GrammaticalType{
	Noun, Verb, Adjective, Adverb, Pronoun, Preposition, Conjunction, Interjection,
}

// AllTypes returns every grammatical type in declaration order.
func AllTypes() []GrammaticalType {
	return append([]GrammaticalType(nil), grammaticalTypes...)
}

func (t GrammaticalType) String() string { return string(t) }

func (t GrammaticalType) IsValid() bool {
	for _, v := range grammaticalTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseType resolves a type name case-insensitively.
func ParseType(s string) (GrammaticalType, error) {
	for _, v := range grammaticalTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Gender is the grammatical gender of a noun.
type Gender string

const (
	Masculine Gender = "Masculine"
	Feminine  Gender = "Feminine"
	Neuter    Gender = "Neuter"
	Plural    Gender = "Plural"
)

var genders = []Gender{Masculine, Feminine, Neuter, Plural}

// AllGenders returns every gender in declaration order.
func AllGenders() []Gender {
	return append([]Gender(nil), genders...)
}

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	for _, v := range genders {
		if v == g {
			return true
		}
	}
	return false
}

// Article returns the definite article for the gender.
func (g Gender) Article() string {
	switch g {
	case Masculine:
		return "der"
	case Neuter:
		return "das"
	case Feminine, Plural:
		return "die"
	}
	return ""
}

// ParseGender resolves a gender name case-insensitively. Unknown names
// yield nil.
func ParseGender(s string) *Gender {
	for _, v := range genders {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			g := v
			return &g
		}
	}
	return nil
}

// VocabTag is a topical category independent of the grammatical type.
type VocabTag string

const (
	Animal     VocabTag = "Animal"
	Food       VocabTag = "Food"
	Sport      VocabTag = "Sport"
	School     VocabTag = "School"
	Technology VocabTag = "Technology"
	Plant      VocabTag = "Plant"
	Travel     VocabTag = "Travel"
)

var vocabTags = []VocabTag{Animal, Food, Sport, School, Technology, Plant, Travel}

// AllTags returns every topic tag in declaration order.
func AllTags() []VocabTag {
	return append([]VocabTag(nil), vocabTags...)
}

func (t VocabTag) String() string { return string(t) }

func (t VocabTag) IsValid() bool {
	for _, v := range vocabTags {
		if v == t {
			return true
		}
	}
	return false
}

// DefaultIcon is the emoji shown for a built-in tag in the tag catalog.
func (t VocabTag) DefaultIcon() string {
	switch t {
	case Animal:
		return "🐾"
	case Food:
		return "🍎"
	case Sport:
		return "⚽"
	case School:
		return "🎒"
	case Technology:
		return "💻"
	case Plant:
		return "🌱"
	case Travel:
		return "✈️"
	}
	return ""
}

// ParseTag resolves a tag name case-insensitively.
func ParseTag(s string) (VocabTag, error) {
	for _, v := range vocabTags {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// Auxiliary is the verb used to build the perfect tense.
type Auxiliary string

const (
	Haben Auxiliary = "haben"
	Sein  Auxiliary = "sein"
)

func (a Auxiliary) String() string { return string(a) }

func (a Auxiliary) IsValid() bool { return a == Haben || a == Sein }

// ParseAuxiliary resolves an auxiliary; the empty string maps to Haben.
func ParseAuxiliary(s string) (Auxiliary, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Haben, nil
	case strings.EqualFold(s, string(Haben)):
		return Haben, nil
	case strings.EqualFold(s, string(Sein)):
		return Sein, nil
	}
	return "", fmt.Errorf("%w: auxiliary %q", ErrUnknownValue, s)
}

// NounCase is the grammatical case governed by a preposition.
type NounCase string

const (
	Nominativ NounCase = "Nominativ"
	Akkusativ NounCase = "Akkusativ"
	Dativ     NounCase = "Dativ"
	Genitiv   NounCase = "Genitiv"
)

var nounCases = []NounCase{Nominativ, Akkusativ, Dativ, Genitiv}

// AllCases returns every grammatical case in declaration order.
func AllCases() []NounCase {
	return append([]NounCase(nil), nounCases...)
}

func (c NounCase) String() string { return string(c) }

func (c NounCase) IsValid() bool {
	for _, v := range nounCases {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCase resolves a case name; the empty string yields the zero value.
func ParseCase(s string) (NounCase, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, v := range nounCases {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: case %q", ErrUnknownValue, s)
}

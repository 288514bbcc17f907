package vocab

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one vocabulary word. Fields below the core block are only
// meaningful for the matching grammatical type and are ignored otherwise.
type Entry struct {
	ID              uuid.UUID
	German          string
	English         string
	Type            GrammaticalType
	Tags            []VocabTag
	Notes           string
	ExampleSentence string
	Image           []byte
	CreatedAt       time.Time

	// Noun
	Gender *Gender
	Plural string

	// Verb and adjective
	IsRegular bool

	// Verb
	IsSeparable    bool
	Present        string
	Imperfect      string
	PastParticiple string
	Auxiliary      Auxiliary

	// Adjective
	Comparative string

	// Preposition
	Case NounCase
}

// Option configures an Entry built by New.
type Option func(*Entry)

// New builds a complete entry with a fresh identifier and creation time.
// Verbs and adjectives start out regular.
func New(german, english string, typ GrammaticalType, opts ...Option) *Entry {
	e := &Entry{
		ID:        uuid.New(),
		German:    german,
		English:   english,
		Type:      typ,
		IsRegular: true,
		Auxiliary: Haben,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTags(tags ...VocabTag) Option {
	return func(e *Entry) { e.Tags = append(e.Tags, tags...) }
}

func WithNotes(notes string) Option {
	return func(e *Entry) { e.Notes = notes }
}

func WithExample(sentence string) Option {
	return func(e *Entry) { e.ExampleSentence = sentence }
}

func WithImage(img []byte) Option {
	return func(e *Entry) { e.Image = img }
}

func WithCreatedAt(t time.Time) Option {
	return func(e *Entry) { e.CreatedAt = t.UTC() }
}

// WithNoun sets gender and plural form.
func WithNoun(g Gender, plural string) Option {
	return func(e *Entry) {
		e.Gender = &g
		e.Plural = plural
	}
}

// WithIrregularVerb marks the verb irregular and sets its principal parts.
func WithIrregularVerb(present, imperfect, pastParticiple string) Option {
	return func(e *Entry) {
		e.IsRegular = false
		e.Present = present
		e.Imperfect = imperfect
		e.PastParticiple = pastParticiple
	}
}

func WithSeparable(separable bool) Option {
	return func(e *Entry) { e.IsSeparable = separable }
}

func WithAuxiliary(a Auxiliary) Option {
	return func(e *Entry) { e.Auxiliary = a }
}

// WithComparative marks the adjective irregular and sets its comparative.
func WithComparative(comparative string) Option {
	return func(e *Entry) {
		e.IsRegular = false
		e.Comparative = comparative
	}
}

func WithCase(c NounCase) Option {
	return func(e *Entry) { e.Case = c }
}

// Article returns the definite article of a noun with a known gender.
func (e *Entry) Article() string {
	if e.Type != Noun || e.Gender == nil {
		return ""
	}
	return e.Gender.Article()
}

// HasTag reports whether the entry carries tag.
func (e *Entry) HasTag(tag VocabTag) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks required fields and enumerated values.
func (e *Entry) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(e.German) == "" {
		errs = append(errs, FieldError{Field: "german", Message: "required"})
	}
	if strings.TrimSpace(e.English) == "" {
		errs = append(errs, FieldError{Field: "english", Message: "required"})
	}
	if !e.Type.IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "unknown grammatical type " + string(e.Type)})
	}
	for _, t := range e.Tags {
		if !t.IsValid() {
			errs = append(errs, FieldError{Field: "tags", Message: "unknown tag " + string(t)})
		}
	}
	switch e.Type {
	case Noun:
		if e.Gender != nil && !e.Gender.IsValid() {
			errs = append(errs, FieldError{Field: "gender", Message: "unknown gender " + string(*e.Gender)})
		}
	case Verb:
		if e.Auxiliary != "" && !e.Auxiliary.IsValid() {
			errs = append(errs, FieldError{Field: "auxiliary", Message: "must be haben or sein"})
		}
	case Preposition:
		if e.Case != "" && !e.Case.IsValid() {
			errs = append(errs, FieldError{Field: "case", Message: "unknown case " + string(e.Case)})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Normalize trims text fields, converts line endings to \n, drops
// duplicate tags and capitalizes nouns.
func (e *Entry) Normalize() {
	for _, f := range []*string{
		&e.German, &e.English, &e.Notes, &e.ExampleSentence, &e.Plural,
		&e.Present, &e.Imperfect, &e.PastParticiple, &e.Comparative,
	} {
		*f = strings.TrimSpace(NormalizeNewlines(*f))
	}
	e.Tags = UniqueTags(e.Tags)

	if e.Type == Noun {
		title := cases.Title(language.German, cases.NoLower)
		e.German = title.String(e.German)
		e.Plural = title.String(e.Plural)
	}
}

// NormalizeNewlines rewrites \r\n and lone \r line endings as \n.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Tags != nil {
		c.Tags = append([]VocabTag(nil), e.Tags...)
	}
	if e.Image != nil {
		c.Image = append([]byte(nil), e.Image...)
	}
	if e.Gender != nil {
		g := *e.Gender
		c.Gender = &g
	}
	return &c
}

// UniqueTags returns tags without duplicates, keeping first occurrences.
func UniqueTags(tags []VocabTag) []VocabTag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]VocabTag, 0, len(tags))
	seen := make(map[VocabTag]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Package csvio reads and writes the vocabulary backup format: a header
// line followed by one 17-column row per entry.
package csvio

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// Header lists the column names in file order. Reader and writer share it.
var Header = []string{
	"german",
	"english",
	"type",
	"gender",
	"plural",
	"is_regular",
	"is_separable",
	"present",
	"imperfect",
	"past_participle",
	"auxiliary",
	"comparative",
	"noun_case",
	"example_sentence",
	"notes",
	"tags",
	"created_at",
}

const (
	colGerman = iota
	colEnglish
	colType
	colGender
	colPlural
	colIsRegular
	colIsSeparable
	colPresent
	colImperfect
	colPastParticiple
	colAuxiliary
	colComparative
	colNounCase
	colExample
	colNotes
	colTags
	colCreatedAt
	numColumns
)

// ErrColumnCount is returned for rows that do not have exactly 17 fields.
var ErrColumnCount = errors.New("wrong number of columns")

// DecodeOptions controls how lenient row decoding is.
type DecodeOptions struct {
	// LenientTypes maps unknown grammatical types to noun instead of
	// rejecting the row.
	LenientTypes bool
	Logger       *slog.Logger
	// Now supplies the creation time for rows without one.
	Now func() time.Time
}

// quote wraps a free-text field in double quotes, doubling embedded quotes.
// Line endings are written as \n, the only form encoding/csv hands back
// unchanged inside a quoted field.
func quote(s string) string {
	return `"` + strings.ReplaceAll(vocab.NormalizeNewlines(s), `"`, `""`) + `"`
}

// EncodeRow serializes e as one CSV line without a trailing newline.
// Free-text columns are always quoted.
func EncodeRow(e *vocab.Entry) string {
	fields := make([]string, numColumns)
	fields[colGerman] = quote(e.German)
	fields[colEnglish] = quote(e.English)
	fields[colType] = e.Type.String()
	if e.Gender != nil {
		fields[colGender] = e.Gender.String()
	}
	fields[colPlural] = quote(e.Plural)
	fields[colIsRegular] = strconv.FormatBool(e.IsRegular)
	fields[colIsSeparable] = strconv.FormatBool(e.IsSeparable)
	fields[colPresent] = quote(e.Present)
	fields[colImperfect] = quote(e.Imperfect)
	fields[colPastParticiple] = quote(e.PastParticiple)
	fields[colAuxiliary] = e.Auxiliary.String()
	fields[colComparative] = quote(e.Comparative)
	fields[colNounCase] = e.Case.String()
	fields[colExample] = quote(e.ExampleSentence)
	fields[colNotes] = quote(e.Notes)
	fields[colTags] = quote(joinTags(e.Tags))
	fields[colCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	return strings.Join(fields, ",")
}

func joinTags(tags []vocab.VocabTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

// DecodeRecord builds an entry from one parsed CSV record.
func DecodeRecord(fields []string, opts DecodeOptions) (*vocab.Entry, error) {
	if len(fields) != numColumns {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(fields), numColumns)
	}

	typ, err := vocab.ParseType(fields[colType])
	if err != nil {
		if !opts.LenientTypes {
			return nil, err
		}
		if opts.Logger != nil {
			opts.Logger.Warn("unknown grammatical type, defaulting to noun",
				slog.String("type", fields[colType]),
				slog.String("german", fields[colGerman]))
		}
		typ = vocab.Noun
	}

	tags, err := parseTags(fields[colTags])
	if err != nil {
		return nil, err
	}
	isRegular, err := parseBool(fields[colIsRegular], true, "is_regular")
	if err != nil {
		return nil, err
	}
	isSeparable, err := parseBool(fields[colIsSeparable], false, "is_separable")
	if err != nil {
		return nil, err
	}
	aux, err := vocab.ParseAuxiliary(fields[colAuxiliary])
	if err != nil {
		return nil, err
	}
	nounCase, err := vocab.ParseCase(fields[colNounCase])
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime(fields[colCreatedAt], opts.Now)
	if err != nil {
		return nil, err
	}

	e := vocab.New(fields[colGerman], fields[colEnglish], typ, vocab.WithCreatedAt(createdAt))
	e.Gender = vocab.ParseGender(fields[colGender])
	e.Plural = fields[colPlural]
	e.IsRegular = isRegular
	e.IsSeparable = isSeparable
	e.Present = fields[colPresent]
	e.Imperfect = fields[colImperfect]
	e.PastParticiple = fields[colPastParticiple]
	e.Auxiliary = aux
	e.Comparative = fields[colComparative]
	e.Case = nounCase
	e.ExampleSentence = fields[colExample]
	e.Notes = fields[colNotes]
	e.Tags = tags
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func parseTags(s string) ([]vocab.VocabTag, error) {
	var tags []vocab.VocabTag
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := vocab.ParseTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return vocab.UniqueTags(tags), nil
}

func parseBool(s string, def bool, column string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s %q", vocab.ErrUnknownValue, column, s)
	}
	return b, nil
}

func parseTime(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if now != nil {
			return now().UTC(), nil
		}
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: created_at %q", vocab.ErrUnknownValue, s)
	}
	return t.UTC(), nil
}

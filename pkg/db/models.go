package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
)

const entryColumns = `id, german, english, type, gender, plural, is_regular, is_separable,
	present, imperfect, past_participle, auxiliary, comparative, noun_case,
	example_sentence, notes, image, created_at`

// entryRow mirrors one row of the entries table.
type entryRow struct {
	ID              string
	German          string
	English         string
	Type            string
	Gender          sql.NullString
	Plural          string
	IsRegular       bool
	IsSeparable     bool
	Present         string
	Imperfect       string
	PastParticiple  string
	Auxiliary       string
	Comparative     string
	NounCase        string
	ExampleSentence string
	Notes           string
	Image           []byte
	CreatedAt       int64
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*vocab.Entry, error) {
	var r entryRow
	if err := s.Scan(&r.ID, &r.German, &r.English, &r.Type, &r.Gender, &r.Plural,
		&r.IsRegular, &r.IsSeparable, &r.Present, &r.Imperfect, &r.PastParticiple,
		&r.Auxiliary, &r.Comparative, &r.NounCase, &r.ExampleSentence, &r.Notes,
		&r.Image, &r.CreatedAt); err != nil {
		return nil, err
	}
	return r.toEntry()
}

func (r *entryRow) toEntry() (*vocab.Entry, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("entry id %q: %w", r.ID, err)
	}
	e := &vocab.Entry{
		ID:              id,
		German:          r.German,
		English:         r.English,
		Type:            vocab.GrammaticalType(r.Type),
		Plural:          r.Plural,
		IsRegular:       r.IsRegular,
		IsSeparable:     r.IsSeparable,
		Present:         r.Present,
		Imperfect:       r.Imperfect,
		PastParticiple:  r.PastParticiple,
		Auxiliary:       vocab.Auxiliary(r.Auxiliary),
		Comparative:     r.Comparative,
		Case:            vocab.NounCase(r.NounCase),
		ExampleSentence: r.ExampleSentence,
		Notes:           r.Notes,
		Image:           r.Image,
		CreatedAt:       time.Unix(0, r.CreatedAt).UTC(),
	}
	if r.Gender.Valid {
		g := vocab.Gender(r.Gender.String)
		e.Gender = &g
	}
	return e, nil
}

func entryArgs(e *vocab.Entry) []any {
	var gender any
	if e.Gender != nil {
		gender = e.Gender.String()
	}
	return []any{
		e.ID.String(), e.German, e.English, e.Type.String(), gender, e.Plural,
		e.IsRegular, e.IsSeparable, e.Present, e.Imperfect, e.PastParticiple,
		e.Auxiliary.String(), e.Comparative, e.Case.String(),
		e.ExampleSentence, e.Notes, e.Image, e.CreatedAt.UnixNano(),
	}
}

package csvio

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// decodeLine runs a single encoded row back through the CSV reader.
func decodeLine(t *testing.T, line string, opts DecodeOptions) (*vocab.Entry, error) {
	t.Helper()
	record, err := csv.NewReader(strings.NewReader(line)).Read()
	require.NoError(t, err)
	return DecodeRecord(record, opts)
}

func assertSameFields(t *testing.T, want, got *vocab.Entry) {
	t.Helper()
	w, g := want.Clone(), got.Clone()
	w.ID, g.ID = [16]byte{}, [16]byte{}
	w.Image, g.Image = nil, nil
	assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "created_at %v != %v", w.CreatedAt, g.CreatedAt)
	w.CreatedAt, g.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, w, g)
}

func TestRoundTrip(t *testing.T) {
	created := time.Date(2025, 12, 12, 9, 30, 15, 123456789, time.UTC)
	entries := []*vocab.Entry{
		vocab.New("Auto", "car", vocab.Noun, vocab.WithNoun(vocab.Neuter, "Autos"), vocab.WithCreatedAt(created)),
		vocab.New("laufen", "to walk, to run", vocab.Verb,
			vocab.WithIrregularVerb("läuft", "lief", "gelaufen"),
			vocab.WithAuxiliary(vocab.Sein),
			vocab.WithSeparable(true),
			vocab.WithExample(`Er sagt: "Ich laufe, du läufst."`),
			vocab.WithCreatedAt(created)),
		vocab.New("lang", "long", vocab.Adjective, vocab.WithComparative("länger"),
			vocab.WithNotes("line one\nline two"), vocab.WithCreatedAt(created)),
		vocab.New("mit", "with", vocab.Preposition, vocab.WithCase(vocab.Dativ), vocab.WithCreatedAt(created)),
		vocab.New("Kuh", "cow", vocab.Noun, vocab.WithNoun(vocab.Feminine, "Kühe"),
			vocab.WithTags(vocab.Animal, vocab.Food), vocab.WithCreatedAt(created)),
		vocab.New("oder", "or", vocab.Conjunction, vocab.WithCreatedAt(created)),
		vocab.New("Ding", "thing", vocab.Noun, vocab.WithCreatedAt(created)),
		normalized(vocab.New("Baum", "tree", vocab.Noun,
			vocab.WithNotes("line one\r\nline two"), vocab.WithExample("erste\rzweite"),
			vocab.WithCreatedAt(created))),
	}

	for _, e := range entries {
		t.Run(e.German, func(t *testing.T) {
			got, err := decodeLine(t, EncodeRow(e), DecodeOptions{})
			require.NoError(t, err)
			assertSameFields(t, e, got)
			assert.NotEqual(t, e.ID, got.ID)
		})
	}
}

func normalized(e *vocab.Entry) *vocab.Entry {
	e.Normalize()
	return e
}

func TestRoundTrip_WindowsLineEndings(t *testing.T) {
	e := vocab.New("Baum", "tree", vocab.Noun, vocab.WithNotes("line one\r\nline two\rline three"))

	line := EncodeRow(e)
	assert.NotContains(t, line, "\r")

	got, err := decodeLine(t, line, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three", got.Notes)
	assert.Equal(t, "line one\r\nline two\rline three", e.Notes, "encoding leaves the entry alone")
}

func TestEncodeRow_QuotesFreeText(t *testing.T) {
	e := vocab.New("Haus", "house", vocab.Noun, vocab.WithNoun(vocab.Neuter, "Häuser"),
		vocab.WithNotes(`say "hi"`), vocab.WithTags(vocab.School))
	e.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	want := `"Haus","house",Noun,Neuter,"Häuser",true,false,"","","",haben,"",,"","say ""hi""","School",2025-01-02T03:04:05Z`
	assert.Equal(t, want, EncodeRow(e))
}

func TestDecodeRecord_Errors(t *testing.T) {
	row := func(typ, gender, tags string) []string {
		r := make([]string, numColumns)
		r[colGerman] = "Wort"
		r[colEnglish] = "word"
		r[colType] = typ
		r[colGender] = gender
		r[colTags] = tags
		return r
	}

	_, err := DecodeRecord(row("Article", "", ""), DecodeOptions{})
	assert.ErrorIs(t, err, vocab.ErrUnknownType)

	e, err := DecodeRecord(row("Article", "", ""), DecodeOptions{LenientTypes: true})
	require.NoError(t, err)
	assert.Equal(t, vocab.Noun, e.Type)

	e, err = DecodeRecord(row("Noun", "sächlich", ""), DecodeOptions{})
	require.NoError(t, err)
	assert.Nil(t, e.Gender)

	_, err = DecodeRecord(row("Noun", "", "Animal,Music"), DecodeOptions{})
	require.ErrorIs(t, err, vocab.ErrUnknownTag)
	assert.Contains(t, err.Error(), "Music")

	_, err = DecodeRecord([]string{"a", "b"}, DecodeOptions{})
	assert.ErrorIs(t, err, ErrColumnCount)

	bad := row("Verb", "", "")
	bad[colIsRegular] = "maybe"
	_, err = DecodeRecord(bad, DecodeOptions{})
	assert.ErrorIs(t, err, vocab.ErrUnknownValue)

	blank := row("Noun", "", "")
	blank[colEnglish] = "  "
	_, err = DecodeRecord(blank, DecodeOptions{})
	assert.ErrorIs(t, err, vocab.ErrValidation)
}

func TestDecodeRecord_DefaultsCreatedAt(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := make([]string, numColumns)
	r[colGerman], r[colEnglish], r[colType] = "Baum", "tree", "noun"

	e, err := DecodeRecord(r, DecodeOptions{Now: func() time.Time { return fixed }})
	require.NoError(t, err)
	assert.Equal(t, fixed, e.CreatedAt)
	assert.True(t, e.IsRegular)
	assert.Equal(t, vocab.Haben, e.Auxiliary)
}

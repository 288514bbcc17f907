package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/wordlist/pkg/vocab"
)

func TestExport_SortsAlphabetically(t *testing.T) {
	entries := []*vocab.Entry{
		vocab.New("Zug", "train", vocab.Noun),
		vocab.New("Auto", "car", vocab.Noun),
		vocab.New("laufen", "to walk", vocab.Verb),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"Auto"`))
	assert.True(t, strings.HasPrefix(lines[2], `"laufen"`))
	assert.True(t, strings.HasPrefix(lines[3], `"Zug"`))

	assert.Equal(t, "Zug", entries[0].German, "input slice must not be reordered")
}

func TestExportImport_RoundTrip(t *testing.T) {
	entries := []*vocab.Entry{
		vocab.New("Kuh", "cow", vocab.Noun, vocab.WithNoun(vocab.Feminine, "Kühe"), vocab.WithTags(vocab.Animal)),
		vocab.New("laufen", "to walk", vocab.Verb, vocab.WithIrregularVerb("läuft", "lief", "gelaufen"),
			vocab.WithExample("Ich laufe, also bin ich.")),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries))

	res, err := Import(&buf, DecodeOptions{})
	require.NoError(t, err)
	require.NoError(t, res.Err())
	require.Len(t, res.Entries, 2)
	assertSameFields(t, entries[0], res.Entries[0])
	assertSameFields(t, entries[1], res.Entries[1])
}

func TestImport_PartialFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []*vocab.Entry{
		vocab.New("Auto", "car", vocab.Noun),
		vocab.New("Haus", "house", vocab.Noun),
		vocab.New("Stadt", "city", vocab.Noun),
	}))
	data := strings.Replace(buf.String(), `"Haus","house",Noun,,"",true,false,"","","",haben,"",,"","",""`,
		`"Haus","house",Noun,,"",true,false,"","","",haben,"",,"","","Music"`, 1)
	require.Contains(t, data, "Music")

	res, err := Import(strings.NewReader(data), DecodeOptions{})
	require.NoError(t, err)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, "Auto", res.Entries[0].German)
	assert.Equal(t, "Stadt", res.Entries[1].German)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Equal(t, "Haus", res.Errors[0].German)
	assert.ErrorIs(t, res.Errors[0], vocab.ErrUnknownTag)
	assert.ErrorIs(t, res.Err(), vocab.ErrUnknownTag)
}

func TestImport_ShortRowIsRowError(t *testing.T) {
	data := strings.Join(Header, ",") + "\n" + `"Baum","tree",Noun` + "\n"

	res, err := Import(strings.NewReader(data), DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], ErrColumnCount)
}

func TestImport_BadHeader(t *testing.T) {
	_, err := Import(strings.NewReader("german,english,type,tags\n"), DecodeOptions{})
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = Import(strings.NewReader(""), DecodeOptions{})
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestImport_AcceptsUnquotedFields(t *testing.T) {
	data := strings.Join(Header, ",") + "\n" +
		"Baum,tree,noun,masculine,Bäume,,,,,,,,,,,Plant,\n"

	res, err := Import(strings.NewReader(data), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	e := res.Entries[0]
	assert.Equal(t, "der", e.Article())
	assert.Equal(t, "Bäume", e.Plural)
	assert.Equal(t, []vocab.VocabTag{vocab.Plant}, e.Tags)
}

package vocab

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	before := time.Now().UTC()
	e := New("heiraten", "to marry", Verb)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.True(t, e.IsRegular)
	assert.Equal(t, Haben, e.Auxiliary)
	assert.False(t, e.CreatedAt.Before(before))
	assert.NotEqual(t, e.ID, New("heiraten", "to marry", Verb).ID)
}

func TestArticle(t *testing.T) {
	tests := []struct {
		gender Gender
		want   string
	}{
		{Masculine, "der"},
		{Feminine, "die"},
		{Neuter, "das"},
		{Plural, "die"},
	}
	for _, tt := range tests {
		e := New("Wort", "word", Noun, WithNoun(tt.gender, ""))
		assert.Equal(t, tt.want, e.Article(), tt.gender)
	}

	assert.Empty(t, New("Wort", "word", Noun).Article())

	verb := New("gehen", "to go", Verb)
	g := Masculine
	verb.Gender = &g
	assert.Empty(t, verb.Article())
}

func TestValidate(t *testing.T) {
	require.NoError(t, New("Haus", "house", Noun).Validate())

	err := New(" ", "", Noun).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 2)

	bad := New("Haus", "house", GrammaticalType("Article"))
	require.Error(t, bad.Validate())

	tagged := New("Haus", "house", Noun, WithTags(VocabTag("Music")))
	require.Error(t, tagged.Validate())
}

func TestNormalize(t *testing.T) {
	e := New("  auto ", " car ", Noun, WithNoun(Neuter, "autos"), WithTags(Food, Food, Plant))
	e.Normalize()

	assert.Equal(t, "Auto", e.German)
	assert.Equal(t, "car", e.English)
	assert.Equal(t, "Autos", e.Plural)
	assert.Equal(t, []VocabTag{Food, Plant}, e.Tags)

	v := New("laufen", "to walk", Verb)
	v.Normalize()
	assert.Equal(t, "laufen", v.German)

	n := New("Baum", "tree", Noun, WithNotes("eins\r\nzwei\rdrei\r\n"), WithExample("Der Baum.\r\n"))
	n.Normalize()
	assert.Equal(t, "eins\nzwei\ndrei", n.Notes)
	assert.Equal(t, "Der Baum.", n.ExampleSentence)
}

func TestClone_IsDeep(t *testing.T) {
	e := New("Kuh", "cow", Noun, WithNoun(Feminine, "Kühe"), WithTags(Animal), WithImage([]byte{1, 2}))
	c := e.Clone()

	c.Tags[0] = Food
	c.Image[0] = 9
	*c.Gender = Masculine

	assert.Equal(t, Animal, e.Tags[0])
	assert.Equal(t, byte(1), e.Image[0])
	assert.Equal(t, Feminine, *e.Gender)
	assert.Equal(t, e.ID, c.ID)
}

func TestParsers(t *testing.T) {
	typ, err := ParseType("verb")
	require.NoError(t, err)
	assert.Equal(t, Verb, typ)

	_, err = ParseType("article")
	assert.ErrorIs(t, err, ErrUnknownType)

	assert.Nil(t, ParseGender("sächlich"))
	require.NotNil(t, ParseGender("NEUTER"))

	tag, err := ParseTag(" food ")
	require.NoError(t, err)
	assert.Equal(t, Food, tag)

	_, err = ParseTag("Music")
	assert.ErrorIs(t, err, ErrUnknownTag)

	aux, err := ParseAuxiliary("")
	require.NoError(t, err)
	assert.Equal(t, Haben, aux)

	_, err = ParseAuxiliary("werden")
	assert.ErrorIs(t, err, ErrUnknownValue)

	c, err := ParseCase("dativ")
	require.NoError(t, err)
	assert.Equal(t, Dativ, c)
}

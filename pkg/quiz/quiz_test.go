package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/wordlist/pkg/vocab"
	"github.com/japaniel/wordlist/pkg/wordstore"
)

type sliceSource []*vocab.Entry

func (s sliceSource) Snapshot(context.Context) ([]*vocab.Entry, error) {
	return append([]*vocab.Entry(nil), s...), nil
}

type failingSource struct{}

func (failingSource) Snapshot(context.Context) ([]*vocab.Entry, error) {
	return nil, errors.New("disk on fire")
}

func words(n int) sliceSource {
	all := []*vocab.Entry{
		vocab.New("Hund", "dog", vocab.Noun),
		vocab.New("Katze", "cat", vocab.Noun),
		vocab.New("laufen", "to run", vocab.Verb),
		vocab.New("schnell", "fast", vocab.Adjective),
		vocab.New("und", "and", vocab.Conjunction),
		vocab.New("mit", "with", vocab.Preposition),
	}
	return sliceSource(all[:n])
}

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(7, 11)))
}

func TestStartDrawsDistinctOptions(t *testing.T) {
	s := NewSession(words(6), seeded())
	require.Equal(t, NotStarted, s.State())
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, InProgress, s.State())

	q := s.Question()
	require.NotNil(t, q)
	require.Len(t, q.Options, DefaultOptions)

	seen := map[uuid.UUID]bool{}
	for _, o := range q.Options {
		assert.False(t, seen[o.ID], "duplicate option %s", o.German)
		seen[o.ID] = true
	}
	assert.True(t, seen[q.Target.ID], "target must be among the options")
}

func TestStartWithFewEntriesUsesAll(t *testing.T) {
	for n := 1; n <= 3; n++ {
		s := NewSession(words(n), seeded())
		require.NoError(t, s.Start(context.Background()))
		assert.Len(t, s.Question().Options, n)
	}
}

func TestStartEmptyCollection(t *testing.T) {
	s := NewSession(sliceSource(nil))
	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCollection)
	assert.Equal(t, NotStarted, s.State())

	err = NewSession(failingSource{}).Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestChooseAndNext(t *testing.T) {
	ctx := context.Background()
	s := NewSession(words(5), seeded())
	require.NoError(t, s.Start(ctx))

	target := s.Question().Target
	correct, err := s.Choose(target.ID)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, AnsweredPending, s.State())
	assert.Equal(t, Stats{Score: 1, Answered: 1}, s.Stats())
	assert.True(t, s.LastAnswer().Correct)

	_, err = s.Choose(target.ID)
	assert.ErrorIs(t, err, ErrInvalidState, "answering twice is rejected")

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, InProgress, s.State())
	assert.Nil(t, s.LastAnswer())

	var wrong *vocab.Entry
	for _, o := range s.Question().Options {
		if o.ID != s.Question().Target.ID {
			wrong = o
			break
		}
	}
	require.NotNil(t, wrong)
	correct, err = s.Choose(wrong.ID)
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Equal(t, Stats{Score: 1, Answered: 2}, s.Stats())
	assert.Equal(t, 50.0, s.Stats().Accuracy())
}

func TestInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	s := NewSession(words(4), seeded())

	_, err := s.Choose(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, s.Next(ctx), ErrInvalidState)

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrInvalidState)
	assert.ErrorIs(t, s.Next(ctx), ErrInvalidState)

	_, err = s.Choose(uuid.New())
	assert.ErrorIs(t, err, vocab.ErrNotFound)
	assert.Equal(t, InProgress, s.State())
	assert.Zero(t, s.Stats().Answered)
}

func TestRestartResetsFromAnyState(t *testing.T) {
	ctx := context.Background()
	s := NewSession(words(4), seeded())
	require.NoError(t, s.Start(ctx))
	_, err := s.Choose(s.Question().Target.ID)
	require.NoError(t, err)

	s.Restart()
	assert.Equal(t, NotStarted, s.State())
	assert.Equal(t, Stats{}, s.Stats())
	assert.Nil(t, s.Question())

	require.NoError(t, s.Start(ctx))
}

func TestDirectionToggle(t *testing.T) {
	s := NewSession(words(1), seeded())
	require.NoError(t, s.Start(context.Background()))
	e := s.Question().Target

	assert.Equal(t, "Hund", s.Prompt())
	assert.Equal(t, "dog", s.OptionLabel(e))

	s.ToggleDirection()
	assert.Equal(t, EnglishToGerman, s.Direction())
	assert.Equal(t, "dog", s.Prompt())
	assert.Equal(t, "Hund", s.OptionLabel(e))
	assert.Equal(t, InProgress, s.State(), "direction does not touch the state machine")
}

func TestAccuracyRounding(t *testing.T) {
	assert.Zero(t, Stats{}.Accuracy())
	assert.Equal(t, 66.67, Stats{Score: 2, Answered: 3}.Accuracy())
	assert.Equal(t, 100.0, Stats{Score: 4, Answered: 4}.Accuracy())
}

func TestSampleIsUniformAndLeavesInputAlone(t *testing.T) {
	entries := []*vocab.Entry(words(6))
	before := append([]*vocab.Entry(nil), entries...)
	rng := rand.New(rand.NewPCG(1, 2))

	counts := map[uuid.UUID]int{}
	const rounds = 6000
	for range rounds {
		for _, e := range Sample(rng, entries, 1) {
			counts[e.ID]++
		}
	}
	assert.Equal(t, before, entries)
	for _, e := range entries {
		// Expected 1000 each; allow a wide margin.
		assert.InDelta(t, rounds/len(entries), counts[e.ID], 200, e.German)
	}
}

func TestSessionOverCollection(t *testing.T) {
	ctx := context.Background()
	coll := wordstore.New(wordstore.NewMemoryBackend(), nil, nil)
	_, err := coll.Seed(ctx)
	require.NoError(t, err)

	s := NewSession(coll, seeded(), WithOptions(3))
	require.NoError(t, s.Start(ctx))
	assert.Len(t, s.Question().Options, 3)
}

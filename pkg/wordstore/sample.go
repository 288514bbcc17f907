package wordstore

import (
	"context"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// SampleEntries returns the starter word list.
func SampleEntries() []*vocab.Entry {
	return []*vocab.Entry{
		vocab.New("Auto", "car", vocab.Noun, vocab.WithNoun(vocab.Neuter, "Autos"), vocab.WithTags(vocab.Travel)),
		vocab.New("laufen", "to walk", vocab.Verb,
			vocab.WithIrregularVerb("läuft", "lief", "gelaufen"), vocab.WithAuxiliary(vocab.Sein), vocab.WithTags(vocab.Sport)),
		vocab.New("lang", "long", vocab.Adjective, vocab.WithComparative("länger")),
		vocab.New("Haus", "house", vocab.Noun, vocab.WithNoun(vocab.Neuter, "Häuser")),
		vocab.New("Kuh", "cow", vocab.Noun, vocab.WithNoun(vocab.Feminine, "Kühe"), vocab.WithTags(vocab.Animal)),
		vocab.New("Stadt", "city", vocab.Noun, vocab.WithNoun(vocab.Feminine, "Städte"), vocab.WithTags(vocab.Travel)),
		vocab.New("heiraten", "to marry", vocab.Verb),
		vocab.New("mit", "with", vocab.Preposition, vocab.WithCase(vocab.Dativ)),
	}
}

// Seed adds the starter word list when the collection is empty and
// returns how many entries were added.
func (c *Collection) Seed(ctx context.Context) (int, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	samples := SampleEntries()
	if err := c.AddAll(ctx, samples); err != nil {
		return 0, err
	}
	return len(samples), nil
}

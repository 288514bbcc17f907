// Package harvest finds example sentences for entries in web articles.
package harvest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
)

const (
	DefaultWorkers      = 4
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 10 * 1024 * 1024
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config bounds fetching and matching.
type Config struct {
	Workers      int
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

// Suggestion pairs an entry with a sentence that uses it.
type Suggestion struct {
	EntryID  uuid.UUID
	German   string
	Sentence string
}

// Harvester fetches articles and matches their sentences to entries.
type Harvester struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New creates a Harvester. Zero config fields take the package defaults.
func New(cfg Config, logger *slog.Logger) *Harvester {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Suggest finds, for every entry without an example sentence, the first
// sentence that contains the headword or one of its irregular verb forms
// as whole words. Matching runs on the worker pool; results keep the
// order of entries.
func (h *Harvester) Suggest(ctx context.Context, entries []*vocab.Entry, sentences []string) ([]Suggestion, error) {
	tokenized := make([][]string, len(sentences))
	for i, s := range sentences {
		tokenized[i] = words(s)
	}

	// Each job writes only its own slot, so results need no lock.
	found := make([]*Suggestion, len(entries))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(h.cfg.Workers, h.cfg.Workers*2)
	pool.Start(ctx)

	var submitErr error
	for i, e := range entries {
		if e.ExampleSentence != "" {
			continue
		}
		err := pool.Submit(ctx, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if idx := firstMatch(e, tokenized); idx >= 0 {
				found[i] = &Suggestion{EntryID: e.ID, German: e.German, Sentence: sentences[idx]}
			}
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}

	var out []Suggestion
	for _, s := range found {
		if s != nil {
			out = append(out, *s)
		}
	}
	h.logger.Debug("harvest matched",
		slog.Int("entries", len(entries)),
		slog.Int("sentences", len(sentences)),
		slog.Int("suggestions", len(out)))
	return out, nil
}

// Harvest fetches rawURL and suggests example sentences from it.
func (h *Harvester) Harvest(ctx context.Context, rawURL string, entries []*vocab.Entry) (*Article, []Suggestion, error) {
	article, err := h.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}
	sugg, err := h.Suggest(ctx, entries, SplitSentences(article.Text))
	if err != nil {
		return nil, nil, err
	}
	return article, sugg, nil
}

func firstMatch(e *vocab.Entry, sentences [][]string) int {
	phrases := [][]string{words(e.German)}
	if e.Type == vocab.Verb && !e.IsRegular {
		for _, form := range []string{e.Present, e.Imperfect, e.PastParticiple} {
			if form != "" {
				phrases = append(phrases, words(form))
			}
		}
	}
	for i, tokens := range sentences {
		for _, p := range phrases {
			if containsPhrase(tokens, p) {
				return i
			}
		}
	}
	return -1
}

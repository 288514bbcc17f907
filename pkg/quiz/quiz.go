// Package quiz runs multiple-choice flashcard rounds over the collection.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
)

var (
	ErrInvalidState    = errors.New("quiz: invalid state for this action")
	ErrEmptyCollection = errors.New("quiz: collection is empty")
)

// DefaultOptions is the number of choices per question: the target plus
// three distractors.
const DefaultOptions = 4

// State is the position of a session in its question loop.
type State int

const (
	NotStarted State = iota
	InProgress
	AnsweredPending
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case AnsweredPending:
		return "answered"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction selects which side of an entry is asked.
type Direction int

const (
	GermanToEnglish Direction = iota
	EnglishToGerman
)

// Source supplies the entries questions are drawn from.
type Source interface {
	Snapshot(ctx context.Context) ([]*vocab.Entry, error)
}

// Stats is the running score of a session.
type Stats struct {
	Score    int
	Answered int
}

// Accuracy is the share of correct answers as a percentage rounded to
// two decimals. It is zero before the first answer.
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	pct := float64(s.Score) / float64(s.Answered) * 100
	return math.Round(pct*100) / 100
}

// Question is the current prompt and its shuffled options.
type Question struct {
	Target  *vocab.Entry
	Options []*vocab.Entry
}

// Answer records the outcome of the last Choose.
type Answer struct {
	Chosen  uuid.UUID
	Correct bool
}

// Session is a single quiz. It is not safe for concurrent use.
type Session struct {
	src       Source
	rng       *rand.Rand
	options   int
	logger    *slog.Logger
	state     State
	direction Direction
	question  *Question
	answer    *Answer
	stats     Stats
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithOptions sets the number of choices per question. Values below two
// are ignored.
func WithOptions(n int) Option {
	return func(s *Session) {
		if n >= 2 {
			s.options = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session in the NotStarted state.
func NewSession(src Source, opts ...Option) *Session {
	s := &Session{
		src:     src,
		options: DefaultOptions,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

func (s *Session) State() State { return s.state }
func (s *Session) Stats() Stats { return s.stats }
func (s *Session) Direction() Direction { return s.direction }
func (s *Session) Question() *Question { return s.question }
func (s *Session) LastAnswer() *Answer { return s.answer }

// Start draws the first question.
func (s *Session) Start(ctx context.Context) error {
	if s.state != NotStarted {
		return fmt.Errorf("start while %s: %w", s.state, ErrInvalidState)
	}
	return s.draw(ctx)
}

// Choose answers the current question with the option identified by id.
func (s *Session) Choose(id uuid.UUID) (bool, error) {
	if s.state != InProgress {
		return false, fmt.Errorf("choose while %s: %w", s.state, ErrInvalidState)
	}
	if !s.isOption(id) {
		return false, fmt.Errorf("option %s is not offered: %w", id, vocab.ErrNotFound)
	}
	correct := id == s.question.Target.ID
	s.stats.Answered++
	if correct {
		s.stats.Score++
	}
	s.answer = &Answer{Chosen: id, Correct: correct}
	s.state = AnsweredPending
	s.logger.Debug("quiz answer",
		slog.String("target", s.question.Target.German),
		slog.Bool("correct", correct),
		slog.Int("score", s.stats.Score),
		slog.Int("answered", s.stats.Answered))
	return correct, nil
}

// Next moves past an answered question and draws a fresh one.
func (s *Session) Next(ctx context.Context) error {
	if s.state != AnsweredPending {
		return fmt.Errorf("next while %s: %w", s.state, ErrInvalidState)
	}
	return s.draw(ctx)
}

// Restart returns to NotStarted and clears the score. It is valid in
// every state.
func (s *Session) Restart() {
	s.state = NotStarted
	s.question = nil
	s.answer = nil
	s.stats = Stats{}
}

// ToggleDirection flips the question direction. The state machine is
// unaffected.
func (s *Session) ToggleDirection() {
	if s.direction == GermanToEnglish {
		s.direction = EnglishToGerman
	} else {
		s.direction = GermanToEnglish
	}
}

// Prompt renders the target side being asked.
func (s *Session) Prompt() string {
	if s.question == nil {
		return ""
	}
	if s.direction == EnglishToGerman {
		return s.question.Target.English
	}
	return s.question.Target.German
}

// OptionLabel renders an option in the answering language.
func (s *Session) OptionLabel(e *vocab.Entry) string {
	if s.direction == EnglishToGerman {
		return e.German
	}
	return e.English
}

func (s *Session) isOption(id uuid.UUID) bool {
	for _, o := range s.question.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) draw(ctx context.Context) error {
	entries, err := s.src.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("quiz snapshot: %w", err)
	}
	if len(entries) == 0 {
		return ErrEmptyCollection
	}

	picked := Sample(s.rng, entries, s.options)
	target := picked[0]
	s.rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	s.question = &Question{Target: target, Options: picked}
	s.answer = nil
	s.state = InProgress
	return nil
}

// Sample draws up to n distinct entries uniformly without replacement
// using a partial Fisher-Yates shuffle over a copy of entries. The
// input slice is not reordered.
func Sample(rng *rand.Rand, entries []*vocab.Entry, n int) []*vocab.Entry {
	pool := append([]*vocab.Entry(nil), entries...)
	n = min(n, len(pool))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

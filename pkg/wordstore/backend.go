// Package wordstore holds the vocabulary collection: an ordered, queryable
// set of entries on top of a pluggable persistence backend.
package wordstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// Filter restricts a fetch. Zero values match everything.
type Filter struct {
	Type vocab.GrammaticalType
	Tag  vocab.VocabTag
}

// Match reports whether e passes the filter.
func (f Filter) Match(e *vocab.Entry) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	return true
}

// Backend is the persistence boundary. Implementations own durability,
// filtering and ordering; returned entries must not alias stored state.
type Backend interface {
	Fetch(ctx context.Context, f Filter, mode vocab.SortMode) ([]*vocab.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*vocab.Entry, error)
	Insert(ctx context.Context, e *vocab.Entry) error
	InsertMany(ctx context.Context, es []*vocab.Entry) error
	Update(ctx context.Context, e *vocab.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)

	ListTags(ctx context.Context) ([]*vocab.CatalogTag, error)
	CreateTag(ctx context.Context, t *vocab.CatalogTag) error
	// DeleteTag removes the catalog tag and strips it from every entry
	// carrying it. Entries themselves are kept.
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

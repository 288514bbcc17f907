package wordstore

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/events"
	"github.com/japaniel/wordlist/pkg/vocab"
)

// Query selects, searches and orders entries for All.
type Query struct {
	Filter Filter
	Search string
	Sort   vocab.SortMode
}

// Stats summarizes the collection by grammatical type and topic tag.
type Stats struct {
	Total  int
	ByType map[vocab.GrammaticalType]int
	ByTag  map[vocab.VocabTag]int
}

// Collection is the set of all known entries. Mutations are serialized
// so the backend only ever sees one writer.
type Collection struct {
	mu      sync.Mutex
	backend Backend
	bus     *events.Bus
	logger  *slog.Logger
}

// New creates a collection over backend. A nil bus gets a private one.
func New(backend Backend, bus *events.Bus, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = events.NewBus(logger)
	}
	return &Collection{
		backend: backend,
		bus:     bus,
		logger:  logger,
	}
}

// Events returns the bus mutations are published on.
func (c *Collection) Events() *events.Bus { return c.bus }

// prepare returns a normalized, validated copy of e. The caller's entry
// is untouched until the write succeeds.
func prepare(e *vocab.Entry) (*vocab.Entry, error) {
	n := e.Clone()
	n.Normalize()
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Add normalizes, validates and stores e. On success e holds the stored
// values.
func (c *Collection) Add(ctx context.Context, e *vocab.Entry) error {
	n, err := prepare(e)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.backend.Insert(ctx, n)
	c.mu.Unlock()
	if err != nil {
		c.logger.Error("add entry failed", slog.String("german", n.German), slog.Any("error", err))
		return fmt.Errorf("add entry: %w", err)
	}
	*e = *n

	c.logger.Debug("entry added", slog.String("id", e.ID.String()), slog.String("german", e.German))
	c.bus.Publish(events.Event{Kind: events.EntryAdded, EntryID: e.ID})
	return nil
}

// AddAll stores a batch of entries in one backend call. Either every
// entry is stored or none is.
func (c *Collection) AddAll(ctx context.Context, es []*vocab.Entry) error {
	if len(es) == 0 {
		return nil
	}
	prepared := make([]*vocab.Entry, len(es))
	for i, e := range es {
		n, err := prepare(e)
		if err != nil {
			return fmt.Errorf("entry %q: %w", e.German, err)
		}
		prepared[i] = n
	}

	c.mu.Lock()
	err := c.backend.InsertMany(ctx, prepared)
	c.mu.Unlock()
	if err != nil {
		c.logger.Error("bulk add failed", slog.Int("count", len(es)), slog.Any("error", err))
		return fmt.Errorf("add entries: %w", err)
	}
	for i, n := range prepared {
		*es[i] = *n
	}

	c.logger.Info("entries added", slog.Int("count", len(es)))
	c.bus.Publish(events.Event{Kind: events.EntriesImported, Count: len(es)})
	return nil
}

// Update replaces the stored entry with the same identifier. Any field,
// including the grammatical type, may change.
func (c *Collection) Update(ctx context.Context, e *vocab.Entry) error {
	n, err := prepare(e)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.backend.Update(ctx, n)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	*e = *n

	c.bus.Publish(events.Event{Kind: events.EntryUpdated, EntryID: e.ID})
	return nil
}

// Remove deletes the entry with the given identifier.
func (c *Collection) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	err := c.backend.Delete(ctx, id)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}

	c.bus.Publish(events.Event{Kind: events.EntryRemoved, EntryID: id})
	return nil
}

// Get returns a copy of the entry with the given identifier.
func (c *Collection) Get(ctx context.Context, id uuid.UUID) (*vocab.Entry, error) {
	return c.backend.Get(ctx, id)
}

// All returns the entries selected by q. The sequence is evaluated
// lazily against a snapshot taken by this call and may be ranged over
// any number of times.
func (c *Collection) All(ctx context.Context, q Query) (iter.Seq[*vocab.Entry], error) {
	entries, err := c.backend.Fetch(ctx, q.Filter, q.Sort)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	return func(yield func(*vocab.Entry) bool) {
		for _, e := range entries {
			if !vocab.Matches(e, q.Search) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}, nil
}

// ByType lists entries of one grammatical type alphabetically.
func (c *Collection) ByType(ctx context.Context, t vocab.GrammaticalType) (iter.Seq[*vocab.Entry], error) {
	return c.All(ctx, Query{Filter: Filter{Type: t}})
}

// ByTag lists entries carrying tag alphabetically.
func (c *Collection) ByTag(ctx context.Context, tag vocab.VocabTag) (iter.Seq[*vocab.Entry], error) {
	return c.All(ctx, Query{Filter: Filter{Tag: tag}})
}

// Snapshot returns every entry, alphabetically.
func (c *Collection) Snapshot(ctx context.Context) ([]*vocab.Entry, error) {
	return c.backend.Fetch(ctx, Filter{}, vocab.SortAlphabetical)
}

// Count returns the number of stored entries.
func (c *Collection) Count(ctx context.Context) (int, error) {
	return c.backend.Count(ctx)
}

// Stats counts entries per grammatical type and per topic tag.
func (c *Collection) Stats(ctx context.Context) (*Stats, error) {
	entries, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{
		Total:  len(entries),
		ByType: make(map[vocab.GrammaticalType]int),
		ByTag:  make(map[vocab.VocabTag]int),
	}
	for _, e := range entries {
		st.ByType[e.Type]++
		for _, t := range e.Tags {
			st.ByTag[t]++
		}
	}
	return st, nil
}

// Tags lists the tag catalog.
func (c *Collection) Tags(ctx context.Context) ([]*vocab.CatalogTag, error) {
	return c.backend.ListTags(ctx)
}

// CreateTag adds a catalog tag. The name is required.
func (c *Collection) CreateTag(ctx context.Context, t *vocab.CatalogTag) error {
	if t.Name == "" {
		return vocab.NewValidationError("name", "required")
	}
	c.mu.Lock()
	err := c.backend.CreateTag(ctx, t)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}

	c.bus.Publish(events.Event{Kind: events.TagCreated, TagID: t.ID, Tag: t.Name})
	return nil
}

// DeleteTag removes a catalog tag and strips it from tagged entries. Each
// entry that lost the tag is published as updated, followed by the
// deletion itself.
func (c *Collection) DeleteTag(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	name, affected, err := c.tagCarriers(ctx, id)
	if err == nil {
		err = c.backend.DeleteTag(ctx, id)
	}
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	c.logger.Debug("tag deleted", slog.String("tag", name), slog.Int("entries", len(affected)))
	for _, e := range affected {
		c.bus.Publish(events.Event{Kind: events.EntryUpdated, EntryID: e.ID})
	}
	c.bus.Publish(events.Event{Kind: events.TagDeleted, TagID: id, Tag: name, Count: len(affected)})
	return nil
}

// tagCarriers looks up the catalog tag's name and the entries carrying it.
// A missing tag yields an empty name and lets the backend report it.
func (c *Collection) tagCarriers(ctx context.Context, id uuid.UUID) (string, []*vocab.Entry, error) {
	tags, err := c.backend.ListTags(ctx)
	if err != nil {
		return "", nil, err
	}
	for _, t := range tags {
		if t.ID != id {
			continue
		}
		tag, err := vocab.ParseTag(t.Name)
		if err != nil {
			// Custom catalog names carry no entries.
			return t.Name, nil, nil
		}
		affected, err := c.backend.Fetch(ctx, Filter{Tag: tag}, vocab.SortAlphabetical)
		return t.Name, affected, err
	}
	return "", nil, nil
}

// TagEntries returns the entries currently carrying the catalog tag.
func (c *Collection) TagEntries(ctx context.Context, t *vocab.CatalogTag) ([]*vocab.Entry, error) {
	tag, err := vocab.ParseTag(t.Name)
	if err != nil {
		// Custom catalog names carry no entries.
		return nil, nil
	}
	seq, err := c.ByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	var out []*vocab.Entry
	for e := range seq {
		out = append(out, e)
	}
	return out, nil
}

// SeedTags fills an empty catalog with the built-in topic tags.
func (c *Collection) SeedTags(ctx context.Context) (int, error) {
	existing, err := c.backend.ListTags(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	builtin := vocab.BuiltinCatalog()
	for _, t := range builtin {
		if err := c.CreateTag(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(builtin), nil
}

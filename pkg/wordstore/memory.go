package wordstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// MemoryBackend keeps entries in insertion order for the lifetime of the
// process.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries []*vocab.Entry
	tags    []*vocab.CatalogTag
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Fetch(_ context.Context, f Filter, mode vocab.SortMode) ([]*vocab.Entry, error) {
	m.mu.RLock()
	out := make([]*vocab.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if f.Match(e) {
			out = append(out, e.Clone())
		}
	}
	m.mu.RUnlock()
	vocab.Sort(out, mode)
	return out, nil
}

func (m *MemoryBackend) Get(_ context.Context, id uuid.UUID) (*vocab.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.entries[i].Clone(), nil
	}
	return nil, fmt.Errorf("entry %s: %w", id, vocab.ErrNotFound)
}

func (m *MemoryBackend) Insert(ctx context.Context, e *vocab.Entry) error {
	return m.InsertMany(ctx, []*vocab.Entry{e})
}

func (m *MemoryBackend) InsertMany(_ context.Context, es []*vocab.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[uuid.UUID]bool, len(es))
	for _, e := range es {
		if seen[e.ID] || m.indexOf(e.ID) >= 0 {
			return fmt.Errorf("insert entry %s: duplicate identifier", e.ID)
		}
		seen[e.ID] = true
	}
	for _, e := range es {
		m.entries = append(m.entries, e.Clone())
	}
	return nil
}

func (m *MemoryBackend) Update(_ context.Context, e *vocab.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(e.ID)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", e.ID, vocab.ErrNotFound)
	}
	m.entries[i] = e.Clone()
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", id, vocab.ErrNotFound)
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

func (m *MemoryBackend) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *MemoryBackend) ListTags(context.Context) ([]*vocab.CatalogTag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*vocab.CatalogTag, len(m.tags))
	for i, t := range m.tags {
		c := *t
		out[i] = &c
	}
	return out, nil
}

func (m *MemoryBackend) CreateTag(_ context.Context, t *vocab.CatalogTag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *t
	m.tags = append(m.tags, &c)
	return nil
}

func (m *MemoryBackend) DeleteTag(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tags {
		if t.ID != id {
			continue
		}
		m.tags = append(m.tags[:i], m.tags[i+1:]...)
		for _, e := range m.entries {
			e.Tags = stripTag(e.Tags, t.Name)
		}
		return nil
	}
	return fmt.Errorf("tag %s: %w", id, vocab.ErrNotFound)
}

func (m *MemoryBackend) indexOf(id uuid.UUID) int {
	for i, e := range m.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func stripTag(tags []vocab.VocabTag, name string) []vocab.VocabTag {
	out := tags[:0]
	for _, t := range tags {
		if !strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

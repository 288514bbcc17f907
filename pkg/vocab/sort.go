package vocab

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the order entries are listed in.
type SortMode int

const (
	SortAlphabetical SortMode = iota
	SortNewestFirst
	SortOldestFirst
)

func (m SortMode) String() string {
	switch m {
	case SortNewestFirst:
		return "newest"
	case SortOldestFirst:
		return "oldest"
	default:
		return "alpha"
	}
}

// ParseSortMode accepts "alpha", "newest" and "oldest"; empty means alpha.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alpha", "alphabetical":
		return SortAlphabetical, nil
	case "newest", "newer", "newest-first":
		return SortNewestFirst, nil
	case "oldest", "older", "oldest-first":
		return SortOldestFirst, nil
	}
	return 0, fmt.Errorf("%w: sort mode %q", ErrUnknownValue, s)
}

// Sort orders entries in place. Headwords are compared with German
// collation; for the timestamp modes they break ties.
func Sort(entries []*Entry, mode SortMode) {
	col := collate.New(language.German, collate.IgnoreCase, collate.Numeric)
	alpha := func(a, b *Entry) int {
		if c := col.CompareString(a.German, b.German); c != 0 {
			return c
		}
		return strings.Compare(a.German, b.German)
	}
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		switch mode {
		case SortNewestFirst:
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
		case SortOldestFirst:
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
		}
		return alpha(a, b)
	})
}

package vocab

import (
	"strings"

	"github.com/google/uuid"
)

// CatalogTag is a user-visible tag with display metadata. Icon holds
// either a symbol name or, when IconIsEmoji is set, a literal emoji.
type CatalogTag struct {
	ID          uuid.UUID
	Name        string
	Icon        string
	IconIsEmoji bool
}

// NewCatalogTag builds a catalog tag with a fresh identifier.
func NewCatalogTag(name, icon string, iconIsEmoji bool) *CatalogTag {
	return &CatalogTag{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Icon:        icon,
		IconIsEmoji: iconIsEmoji,
	}
}

// BuiltinCatalog returns one catalog tag per topic tag, with emoji icons.
func BuiltinCatalog() []*CatalogTag {
	out := make([]*CatalogTag, 0, len(vocabTags))
	for _, t := range vocabTags {
		out = append(out, NewCatalogTag(t.String(), t.DefaultIcon(), true))
	}
	return out
}

// Label renders the tag for display.
func (c *CatalogTag) Label() string {
	if c.IconIsEmoji && c.Icon != "" {
		return c.Icon + " " + c.Name
	}
	if c.Icon != "" {
		return "[" + c.Icon + "] " + c.Name
	}
	return c.Name
}

// Carries reports whether e carries the topic tag named by the catalog tag.
func (c *CatalogTag) Carries(e *Entry) bool {
	tag, err := ParseTag(c.Name)
	if err != nil {
		return false
	}
	return e.HasTag(tag)
}

package palette

import (
	"errors"
	"fmt"

	"blockslash/internal/config"
	"blockslash/internal/domain"
)

// ErrEmptyRegistry is returned when a palette is configured without entries
var ErrEmptyRegistry = errors.New("palette registry has no entries")

// Entry is one selectable command. Entries are identified by their position
// in the registry and are never modified.
type Entry struct {
	Name    string
	Icon    string
	Flavour domain.Flavour
	Type    string // block subtype; empty when the flavour has none
}

// Registry is the ordered, read-only list of palette entries
type Registry struct {
	entries []Entry
}

// NewRegistry copies entries into a registry
func NewRegistry(entries []Entry) (Registry, error) {
	if len(entries) == 0 {
		return Registry{}, ErrEmptyRegistry
	}
	return Registry{entries: append([]Entry(nil), entries...)}, nil
}

// Len returns the number of entries
func (r Registry) Len() int { return len(r.entries) }

// At returns the entry at index i
func (r Registry) At(i int) Entry { return r.entries[i] }

// Entries returns a copy of all entries in order
func (r Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// DefaultRegistry returns the built-in block types
func DefaultRegistry() Registry {
	return Registry{entries: []Entry{
		{Name: "Text", Icon: "T", Flavour: domain.FlavourParagraph, Type: "text"},
		{Name: "Heading 1", Icon: "H1", Flavour: domain.FlavourParagraph, Type: "h1"},
		{Name: "Heading 2", Icon: "H2", Flavour: domain.FlavourParagraph, Type: "h2"},
		{Name: "Heading 3", Icon: "H3", Flavour: domain.FlavourParagraph, Type: "h3"},
		{Name: "Heading 4", Icon: "H4", Flavour: domain.FlavourParagraph, Type: "h4"},
		{Name: "Heading 5", Icon: "H5", Flavour: domain.FlavourParagraph, Type: "h5"},
		{Name: "Heading 6", Icon: "H6", Flavour: domain.FlavourParagraph, Type: "h6"},
		{Name: "Quote", Icon: "❝", Flavour: domain.FlavourParagraph, Type: "quote"},
		{Name: "Bulleted List", Icon: "•", Flavour: domain.FlavourList, Type: "bulleted"},
		{Name: "Numbered List", Icon: "1.", Flavour: domain.FlavourList, Type: "numbered"},
		{Name: "To-do List", Icon: "☐", Flavour: domain.FlavourList, Type: "todo"},
		{Name: "Code Block", Icon: "<>", Flavour: domain.FlavourCode},
	}}
}

// RegistryFromConfig builds a registry from configured entries, falling
// back to DefaultRegistry when none are configured
func RegistryFromConfig(settings []config.EntrySetting) (Registry, error) {
	if len(settings) == 0 {
		return DefaultRegistry(), nil
	}
	entries := make([]Entry, 0, len(settings))
	for i, s := range settings {
		flavour := domain.Flavour(s.Flavour)
		if s.Name == "" || !flavour.IsText() {
			return Registry{}, fmt.Errorf("%w: entry %d (%q, flavour %q)", config.ErrInvalidEntry, i, s.Name, s.Flavour)
		}
		entries = append(entries, Entry{Name: s.Name, Icon: s.Icon, Flavour: flavour, Type: s.Type})
	}
	return NewRegistry(entries)
}

package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBlockAdded    EventType = "BlockAdded"
	EventBlockUpdated  EventType = "BlockUpdated"
	EventBlockDeleted  EventType = "BlockDeleted"
	EventFocusChanged  EventType = "FocusChanged"
	EventPaletteOpened EventType = "PaletteOpened"
	EventPaletteEnded  EventType = "PaletteEnded"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BlockAddedEvent is emitted when a block is inserted into the tree
type BlockAddedEvent struct {
	BlockID  string
	ParentID string
	Index    int
	Flavour  Flavour
	Subtype  string
}

func (e BlockAddedEvent) Type() EventType { return EventBlockAdded }

// BlockUpdatedEvent is emitted when a block's flavour, subtype or text changes
type BlockUpdatedEvent struct {
	BlockID string
	Flavour Flavour
	Subtype string
}

func (e BlockUpdatedEvent) Type() EventType { return EventBlockUpdated }

// BlockDeletedEvent is emitted when a block is removed from the tree
type BlockDeletedEvent struct {
	BlockID  string
	ParentID string
}

func (e BlockDeletedEvent) Type() EventType { return EventBlockDeleted }

// FocusChangedEvent is emitted when editing focus moves to another block
type FocusChangedEvent struct {
	BlockID string
}

func (e FocusChangedEvent) Type() EventType { return EventFocusChanged }

// PaletteOpenedEvent is emitted when a slash palette attaches to a block
type PaletteOpenedEvent struct {
	BlockID string
}

func (e PaletteOpenedEvent) Type() EventType { return EventPaletteOpened }

// PaletteEndedEvent is emitted once per palette, when it commits or aborts
type PaletteEndedEvent struct {
	BlockID   string
	Committed bool
	Search    string // final search string, commits only
}

func (e PaletteEndedEvent) Type() EventType { return EventPaletteEnded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Flags map[string]bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

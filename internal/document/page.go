package document

import (
	"errors"
	"fmt"
	"sync"

	"blockslash/internal/domain"
	"blockslash/internal/eventbus"
)

var (
	ErrBlockNotFound = errors.New("block not found")
	ErrRootBlock     = errors.New("operation not allowed on the root block")
	ErrNotText       = errors.New("block has no text")
)

// Page is an in-memory block tree with its session awareness and the queue
// of deferred tasks that run after the current edit.
type Page struct {
	mu        sync.RWMutex
	blocks    map[string]*domain.Block
	rootID    string
	ids       IDGenerator
	awareness *Awareness
	tasks     *TaskQueue
	bus       eventbus.EventBus
}

// NewPage creates an empty page. bus may be nil.
func NewPage(ids IDGenerator, awareness *Awareness, bus eventbus.EventBus) *Page {
	if awareness == nil {
		awareness = NewAwareness(nil)
	}
	return &Page{
		blocks:    make(map[string]*domain.Block),
		ids:       ids,
		awareness: awareness,
		tasks:     NewTaskQueue(),
		bus:       bus,
	}
}

// Bootstrap creates the root page block, a note under it and one empty
// paragraph inside the note, and focuses the paragraph. It returns the
// paragraph id.
func (p *Page) Bootstrap(title string) string {
	p.mu.Lock()
	root := p.insertLocked(domain.FlavourPage, domain.Props{Text: title}, "", 0)
	note := p.insertLocked(domain.FlavourNote, domain.Props{}, root, 0)
	para := p.insertLocked(domain.FlavourParagraph, domain.Props{Type: "text"}, note, 0)
	p.rootID = root
	p.mu.Unlock()

	p.Focus(para)
	return para
}

// Root returns the root block id
func (p *Page) Root() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rootID
}

// Title returns the text of the root block
func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if root, ok := p.blocks[p.rootID]; ok {
		return root.Props.Text
	}
	return ""
}

// Block returns a copy of the block with the given id
func (p *Page) Block(id string) (*domain.Block, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.blocks[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Parent returns a copy of the block's parent; false for the root or unknown ids
func (p *Page) Parent(id string) (*domain.Block, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.blocks[id]
	if !ok || b.ParentID == "" {
		return nil, false
	}
	parent, ok := p.blocks[b.ParentID]
	if !ok {
		return nil, false
	}
	return parent.Clone(), true
}

// IndexOf returns the position of id among parentID's children, or -1
func (p *Page) IndexOf(parentID, id string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	parent, ok := p.blocks[parentID]
	if !ok {
		return -1
	}
	for i, child := range parent.Children {
		if child == id {
			return i
		}
	}
	return -1
}

// TextBlocks returns copies of every block carrying rich text, depth first in display order
func (p *Page) TextBlocks() []*domain.Block {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []*domain.Block
	var walk func(id string)
	walk = func(id string) {
		b, ok := p.blocks[id]
		if !ok {
			return
		}
		if b.Flavour.IsText() {
			out = append(out, b.Clone())
		}
		for _, child := range b.Children {
			walk(child)
		}
	}
	walk(p.rootID)
	return out
}

// AddBlock creates a block under parentID at index. Indexes past the end append.
func (p *Page) AddBlock(flavour domain.Flavour, props domain.Props, parentID string, index int) (string, error) {
	p.mu.Lock()
	parent, ok := p.blocks[parentID]
	if !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("%w: parent %s", ErrBlockNotFound, parentID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	id := p.insertLocked(flavour, props, parentID, index)
	p.mu.Unlock()

	p.publish(eventbus.BlockAddedEvent{BlockID: id, ParentID: parentID, Index: index, Flavour: flavour, Subtype: props.Type})
	return id, nil
}

// ConvertBlockType changes a block's flavour and subtype in place, keeping its text
func (p *Page) ConvertBlockType(id string, flavour domain.Flavour, subtype string) error {
	p.mu.Lock()
	b, ok := p.blocks[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if b.ParentID == "" {
		p.mu.Unlock()
		return ErrRootBlock
	}
	b.Flavour = flavour
	b.Props.Type = subtype
	p.mu.Unlock()

	p.publish(eventbus.BlockUpdatedEvent{BlockID: id, Flavour: flavour, Subtype: subtype})
	return nil
}

// SetText replaces a text block's content
func (p *Page) SetText(id, text string) error {
	p.mu.Lock()
	b, ok := p.blocks[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if !b.Flavour.IsText() {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s is a %s block", ErrNotText, id, b.Flavour)
	}
	if b.Props.Text == text {
		p.mu.Unlock()
		return nil
	}
	b.Props.Text = text
	flavour, subtype := b.Flavour, b.Props.Type
	p.mu.Unlock()

	p.publish(eventbus.BlockUpdatedEvent{BlockID: id, Flavour: flavour, Subtype: subtype})
	return nil
}

// DeleteBlock removes a block and its descendants
func (p *Page) DeleteBlock(id string) error {
	p.mu.Lock()
	b, ok := p.blocks[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if b.ParentID == "" {
		p.mu.Unlock()
		return ErrRootBlock
	}
	parentID := b.ParentID
	if parent, ok := p.blocks[parentID]; ok {
		for i, child := range parent.Children {
			if child == id {
				parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
				break
			}
		}
	}
	p.removeLocked(id)
	p.mu.Unlock()

	p.publish(eventbus.BlockDeletedEvent{BlockID: id, ParentID: parentID})
	return nil
}

// Focus moves editing focus to id immediately
func (p *Page) Focus(id string) {
	if p.awareness.setFocused(id) {
		p.publish(eventbus.FocusChangedEvent{BlockID: id})
	}
}

// FocusBlockAsync schedules focus to move to id once the current step has
// finished. The block's editable surface may not exist before then.
func (p *Page) FocusBlockAsync(id string) {
	p.tasks.Defer(func() {
		if _, ok := p.Block(id); !ok {
			return
		}
		p.Focus(id)
	})
}

// Flag reports a session flag
func (p *Page) Flag(name string) bool {
	return p.awareness.Flag(name)
}

// Awareness returns the page's session state
func (p *Page) Awareness() *Awareness {
	return p.awareness
}

// Tasks returns the queue of deferred tasks
func (p *Page) Tasks() *TaskQueue {
	return p.tasks
}

func (p *Page) insertLocked(flavour domain.Flavour, props domain.Props, parentID string, index int) string {
	id := p.ids.NextID()
	p.blocks[id] = &domain.Block{
		ID:       id,
		Flavour:  flavour,
		Props:    props,
		ParentID: parentID,
	}
	if parent, ok := p.blocks[parentID]; ok {
		parent.Children = append(parent.Children, "")
		copy(parent.Children[index+1:], parent.Children[index:])
		parent.Children[index] = id
	}
	return id
}

func (p *Page) removeLocked(id string) {
	b, ok := p.blocks[id]
	if !ok {
		return
	}
	for _, child := range b.Children {
		p.removeLocked(child)
	}
	delete(p.blocks, id)
}

func (p *Page) publish(event eventbus.DomainEvent) {
	if p.bus != nil {
		p.bus.Publish(event)
	}
}

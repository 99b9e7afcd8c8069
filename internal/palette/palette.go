package palette

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"blockslash/internal/config"
	"blockslash/internal/domain"
	"blockslash/internal/surface"
)

var (
	// ErrNoParent means a commit tried to insert next to a block that has no parent
	ErrNoParent = errors.New("block has no parent")
	// ErrIndexOutOfRange means a commit named an entry outside the filtered list
	ErrIndexOutOfRange = errors.New("palette entry index out of range")
)

// FlagAppendFlavour selects inserting a new block on commit instead of
// converting the current one
const FlagAppendFlavour = config.FlagAppendFlavourSlash

// Document is the part of the block tree a palette mutates
type Document interface {
	Parent(id string) (*domain.Block, bool)
	IndexOf(parentID, id string) int
	AddBlock(flavour domain.Flavour, props domain.Props, parentID string, index int) (string, error)
	ConvertBlockType(id string, flavour domain.Flavour, subtype string) error
	FocusBlockAsync(id string)
	Flag(name string) bool
}

// SurfaceLookup finds the rich text a block is edited in
type SurfaceLookup interface {
	RichTextFor(blockID string) (*surface.RichText, bool)
}

// Options wires a palette to its collaborators
type Options struct {
	Registry  Registry
	Document  Document
	Surfaces  SurfaceLookup
	Window    *surface.Target
	Signal    *Signal
	Placement Placement
	Logger    *zap.Logger
}

// State is the transient interaction state of one palette
type State struct {
	Search   string
	Filtered []Entry
	Cursor   Cursor
}

func (s *State) refilter(reg Registry) {
	s.Filtered = Filter(reg, s.Search)
	s.Cursor.Reset(len(s.Filtered))
}

func (s *State) appendChar(char string, reg Registry) {
	s.Search += char
	s.refilter(reg)
}

func (s *State) trim(reg Registry) {
	runes := []rune(s.Search)
	if len(runes) > 0 {
		s.Search = string(runes[:len(runes)-1])
	}
	s.refilter(reg)
}

// Palette is the slash-command menu of one block. It listens on the
// block's rich text ahead of the text's own bindings and on the window for
// Escape, and ends through its Signal exactly once. The owner removes the
// listeners with Detach once the signal fires.
type Palette struct {
	blockID   string
	registry  Registry
	doc       Document
	surfaces  SurfaceLookup
	window    *surface.Target
	signal    *Signal
	placement Placement
	logger    *zap.Logger

	state         State
	removeKeyDown func()
	removeEscape  func()
}

// New creates a palette for blockID. It does not listen until Attach.
func New(blockID string, opts Options) *Palette {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sig := opts.Signal
	if sig == nil {
		sig = NewSignal()
	}
	p := &Palette{
		blockID:   blockID,
		registry:  opts.Registry,
		doc:       opts.Document,
		surfaces:  opts.Surfaces,
		window:    opts.Window,
		signal:    sig,
		placement: opts.Placement,
		logger:    logger.Named("palette").With(zap.String("block", blockID)),
	}
	p.state.refilter(p.registry)
	return p
}

// Attach registers the Escape listener on the window and the key listener
// on the block's rich text. A block without rich text is logged and the
// palette can then only be dismissed.
func (p *Palette) Attach() {
	if p.window != nil && p.removeEscape == nil {
		p.removeEscape = p.window.AddListener(p.escapeListener, surface.Bubble)
	}

	if p.surfaces == nil {
		p.logger.Warn("slash palette may not work properly, no surfaces to attach to")
		return
	}
	rt, ok := p.surfaces.RichTextFor(p.blockID)
	if !ok {
		p.logger.Warn("slash palette may not work properly, no rich text found for block")
		return
	}
	if p.removeKeyDown == nil {
		p.removeKeyDown = rt.AddListener(p.HandleKey, surface.Capture)
	}
}

// Detach removes every listener Attach registered
func (p *Palette) Detach() {
	if p.removeEscape != nil {
		p.removeEscape()
		p.removeEscape = nil
	}
	if p.removeKeyDown != nil {
		p.removeKeyDown()
		p.removeKeyDown = nil
	}
}

// HandleKey is the rich text listener. Once the signal has fired it does nothing.
func (p *Palette) HandleKey(ev *surface.KeyEvent) error {
	if p.signal.Fired() {
		return nil
	}

	action, err := Classify(ev.Key, p.state.Search == "")
	if err != nil {
		return err
	}

	switch a := action.(type) {
	case AbortAction:
		return p.signal.Abort()
	case TrimAction:
		p.state.trim(p.registry)
		return nil
	case AppendAction:
		p.state.appendChar(a.Char, p.registry)
		if len(p.state.Filtered) == 0 {
			return p.signal.Abort()
		}
		return nil
	case MoveAction:
		p.state.Cursor.Move(a.Delta)
		// keep the text cursor still and the surface bindings quiet
		ev.PreventDefault()
		ev.StopPropagation()
		return nil
	case CommitAction:
		ev.PreventDefault()
		ev.StopPropagation()
		return p.commit(p.state.Cursor.Index())
	default:
		return nil
	}
}

func (p *Palette) escapeListener(ev *surface.KeyEvent) error {
	if ev.Key != surface.KeyEscape {
		return nil
	}
	if p.removeEscape != nil {
		p.removeEscape()
		p.removeEscape = nil
	}
	if p.signal.Fired() {
		return nil
	}
	return p.signal.Abort()
}

// Select commits the filtered entry at index, as a click on it would
func (p *Palette) Select(index int) error {
	if p.signal.Fired() {
		return ErrAlreadyEnded
	}
	return p.commit(index)
}

// Dismiss aborts the interaction, as a click outside the palette would
func (p *Palette) Dismiss() error {
	return p.signal.Abort()
}

// commit fires the signal with the search string, then applies the entry.
// With FlagAppendFlavour the entry becomes a new sibling after the block
// and receives focus once the current step is over; otherwise the block
// itself is converted.
func (p *Palette) commit(index int) error {
	if index < 0 || index >= len(p.state.Filtered) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(p.state.Filtered))
	}
	entry := p.state.Filtered[index]

	if err := p.signal.Commit(p.state.Search); err != nil {
		return err
	}

	if p.doc.Flag(FlagAppendFlavour) {
		parent, ok := p.doc.Parent(p.blockID)
		if !ok {
			return fmt.Errorf("failed to add %s block after %s: %w", entry.Flavour, p.blockID, ErrNoParent)
		}
		at := p.doc.IndexOf(parent.ID, p.blockID) + 1
		id, err := p.doc.AddBlock(entry.Flavour, domain.Props{Type: entry.Type}, parent.ID, at)
		if err != nil {
			return fmt.Errorf("failed to add %s block after %s: %w", entry.Flavour, p.blockID, err)
		}
		p.logger.Debug("added block", zap.String("id", id), zap.String("flavour", string(entry.Flavour)), zap.String("type", entry.Type))
		p.doc.FocusBlockAsync(id)
		return nil
	}

	if err := p.doc.ConvertBlockType(p.blockID, entry.Flavour, entry.Type); err != nil {
		return fmt.Errorf("failed to convert %s to %s: %w", p.blockID, entry.Flavour, err)
	}
	return nil
}

// BlockID returns the block the palette belongs to
func (p *Palette) BlockID() string { return p.blockID }

// Signal returns the signal the palette ends through
func (p *Palette) Signal() *Signal { return p.signal }

// Search returns the accumulated search string
func (p *Palette) Search() string { return p.state.Search }

// Filtered returns a copy of the visible entries
func (p *Palette) Filtered() []Entry {
	return append([]Entry(nil), p.state.Filtered...)
}

// Active returns the index of the highlighted entry within Filtered
func (p *Palette) Active() int { return p.state.Cursor.Index() }

// Placement returns the layout hint for the host
func (p *Palette) Placement() Placement { return p.placement }

// SetPlacement updates the layout hint, e.g. after a resize
func (p *Palette) SetPlacement(pl Placement) { p.placement = pl }

package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"blockslash/internal/config"
	"blockslash/internal/document"
	"blockslash/internal/domain"
	"blockslash/internal/eventbus"
	"blockslash/internal/palette"
	"blockslash/internal/surface"
	"blockslash/internal/ui/input"
	inputtypes "blockslash/internal/ui/input/types"
	"blockslash/internal/ui/views"
)

// defaultHeight is used for layout before the first WindowSizeMsg
const defaultHeight = 24

// Options wires a Model to the session it edits
type Options struct {
	Page     *document.Page
	Registry palette.Registry
	Config   *config.Config
	Bus      eventbus.EventBus // may be nil
	Logger   *zap.Logger       // may be nil
}

// Model is the editor: a column of text blocks, each edited in its own
// rich text, plus at most one open slash palette
type Model struct {
	page     *document.Page
	registry palette.Registry
	config   *config.Config
	bus      eventbus.EventBus
	logger   *zap.Logger

	surfaces *surface.Registry
	window   *surface.Target
	input    *input.Handler
	help     help.Model
	renderer *views.Renderer
	helpOps  *HelpOps

	palette *palette.Palette
	region  views.PaletteRegion
	pending []inputtypes.Action

	width         int
	height        int
	statusMessage string
	statusIsError bool
	inPagerMode   bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model and mounts the page's text blocks
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		page:     opts.Page,
		registry: opts.Registry,
		config:   cfg,
		bus:      opts.Bus,
		logger:   logger.Named("ui"),
		surfaces: surface.NewRegistry(),
		window:   &surface.Target{},
		input:    input.New(input.DefaultKeyMap()),
		help:     help.New(),
		renderer: views.NewRenderer(),
	}
	m.window.AddListener(m.windowKeys, surface.Bubble)
	m.syncSurfaces()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.syncSurfaces(), textinput.Blink)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.placePalette()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case flushTasksMsg:
		n := m.page.Tasks().Flush()
		m.logger.Debug("flushed deferred tasks", zap.Int("count", n))
		return m, m.afterStep()

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Help unavailable: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	default:
		// cursor blinks and other bubbles messages go to the focused text
		if rt, ok := m.focusedRichText(); ok {
			return m, rt.Update(msg)
		}
		return m, nil
	}
}

// handleKey routes each key of msg in turn. Runes typed faster than the
// terminal is read arrive together and are delivered one keydown at a time.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := surface.SplitRunes(msg)
	if len(keys) == 1 {
		return m.handleKeyDown(keys[0])
	}
	cmds := make([]tea.Cmd, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, m.handleKeyDown(k))
	}
	return tea.Batch(cmds...)
}

// handleKeyDown routes a keydown the way a browser would: the focused rich
// text's capture and bubble listeners, then the window, then the text's
// default editing unless a listener prevented it.
func (m *Model) handleKeyDown(msg tea.KeyMsg) tea.Cmd {
	ev := surface.NewKeyEvent(msg)
	var errs []error
	var cmds []tea.Cmd

	rt, ok := m.focusedRichText()
	if ok {
		if err := rt.Dispatch(ev); err != nil {
			errs = append(errs, err)
		}
	}
	if !ev.PropagationStopped() {
		if err := m.window.Dispatch(ev); err != nil {
			errs = append(errs, err)
		}
	}

	if ok && !ev.DefaultPrevented() {
		cmds = append(cmds, rt.ApplyDefault(ev))
		if err := m.syncText(rt); err != nil {
			errs = append(errs, err)
		}
	}

	for _, action := range m.takePending() {
		cmd, err := m.processAction(action)
		if err != nil {
			errs = append(errs, err)
		}
		cmds = append(cmds, cmd)
	}

	if err := errors.Join(errs...); err != nil {
		cmds = append(cmds, m.reportError(err))
	}
	cmds = append(cmds, m.afterStep())
	return tea.Batch(cmds...)
}

// handleMouse selects a palette entry on click and dismisses the palette
// on a click anywhere else
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.palette == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	var err error
	idx, inside := m.region.EntryAt(msg.X, msg.Y)
	switch {
	case !inside:
		err = m.palette.Dismiss()
	case idx >= 0:
		err = m.palette.Select(idx)
	default:
		return nil
	}

	var cmds []tea.Cmd
	if err != nil {
		cmds = append(cmds, m.reportError(err))
	}
	cmds = append(cmds, m.afterStep())
	return tea.Batch(cmds...)
}

// afterStep brings surfaces in line with the page and schedules deferred
// tasks for the next update
func (m *Model) afterStep() tea.Cmd {
	cmds := []tea.Cmd{m.syncSurfaces()}
	m.placePalette()
	if m.page.Tasks().Len() > 0 {
		cmds = append(cmds, func() tea.Msg { return flushTasksMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) takePending() []inputtypes.Action {
	actions := m.pending
	m.pending = nil
	return actions
}

// windowKeys is the window listener for global bindings
func (m *Model) windowKeys(ev *surface.KeyEvent) error {
	m.pending = append(m.pending, m.input.HandleWindowKey(ev)...)
	return nil
}

// blockKeys is the bubble listener installed on every rich text
func (m *Model) blockKeys(ev *surface.KeyEvent) error {
	m.pending = append(m.pending, m.input.HandleBlockKey(ev, editorContext{m})...)
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) (tea.Cmd, error) {
	m.logger.Debug("action", zap.String("type", action.Type()))

	switch a := action.(type) {
	case inputtypes.OpenPaletteAction:
		m.openPalette(a.BlockID)
		return nil, nil

	case inputtypes.FocusMoveAction:
		blocks := m.page.TextBlocks()
		idx := indexOfBlock(blocks, m.page.Awareness().Focused()) + a.Delta
		if idx >= 0 && idx < len(blocks) {
			m.page.Focus(blocks[idx].ID)
		}
		return nil, nil

	case inputtypes.SplitBlockAction:
		parent, ok := m.page.Parent(a.BlockID)
		if !ok {
			return nil, fmt.Errorf("failed to split %s: %w", a.BlockID, palette.ErrNoParent)
		}
		if err := m.page.SetText(a.BlockID, a.Before); err != nil {
			return nil, err
		}
		at := m.page.IndexOf(parent.ID, a.BlockID) + 1
		id, err := m.page.AddBlock(domain.FlavourParagraph, domain.Props{Type: "text", Text: a.After}, parent.ID, at)
		if err != nil {
			return nil, err
		}
		m.page.Focus(id)
		return nil, nil

	case inputtypes.DeleteBlockAction:
		blocks := m.page.TextBlocks()
		idx := indexOfBlock(blocks, a.BlockID)
		next := ""
		if idx > 0 {
			next = blocks[idx-1].ID
		} else if idx == 0 && len(blocks) > 1 {
			next = blocks[1].ID
		}
		if err := m.page.DeleteBlock(a.BlockID); err != nil {
			return nil, err
		}
		if next != "" {
			m.page.Focus(next)
		}
		return nil, nil

	case inputtypes.ToggleHelpAction:
		return m.fetchHelpPager(), nil

	case inputtypes.QuitAction:
		return tea.Quit, nil
	}
	return nil, nil
}

// openPalette attaches a slash palette to blockID
func (m *Model) openPalette(blockID string) {
	sig := palette.NewSignal()
	p := palette.New(blockID, palette.Options{
		Registry: m.registry,
		Document: m.page,
		Surfaces: m.surfaces,
		Window:   m.window,
		Signal:   sig,
		Logger:   m.logger,
	})
	sig.OnEnd(func(e palette.Ended) { m.paletteEnded(p, e) })
	p.Attach()

	m.palette = p
	m.placePalette()
	m.publish(eventbus.PaletteOpenedEvent{BlockID: blockID})
}

// paletteEnded runs synchronously when the palette's signal fires, before
// a commit touches the document. A commit removes the typed "/" and search
// string from the block.
func (m *Model) paletteEnded(p *palette.Palette, e palette.Ended) {
	if e.Kind == palette.Committed {
		if rt, ok := m.surfaces.RichTextFor(p.BlockID()); ok {
			rt.DeleteBeforeCursor(len([]rune("/" + e.Search)))
			if err := m.syncText(rt); err != nil {
				m.logger.Warn("failed to remove slash command text", zap.Error(err))
			}
		}
	}

	p.Detach()
	if m.palette == p {
		m.palette = nil
		m.region = views.PaletteRegion{}
	}
	m.logger.Debug("palette ended", zap.String("block", p.BlockID()), zap.Stringer("kind", e.Kind), zap.String("search", e.Search))
	m.publish(eventbus.PaletteEndedEvent{BlockID: p.BlockID(), Committed: e.Kind == palette.Committed, Search: e.Search})
}

// placePalette recomputes where the open palette fits around its block
func (m *Model) placePalette() {
	if m.palette == nil {
		return
	}
	blocks := m.blockLines()
	idx := -1
	for i, b := range blocks {
		if b.ID == m.palette.BlockID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	height := m.height
	if height <= 0 {
		height = defaultHeight
	}
	cursor := 0
	if rt, ok := m.surfaces.RichTextFor(m.palette.BlockID()); ok {
		cursor = rt.Position()
	}

	row := views.AnchorRow(height, idx)
	col := m.renderer.AnchorColumn(blocks, idx, cursor)
	need := len(m.palette.Filtered()) + views.PaletteFrame
	m.palette.SetPlacement(palette.ComputePlacement(
		col, row,
		row, height-row-1,
		need, views.PaletteFrame,
		m.config.Palette.MaxHeight,
		palette.ParsePosition(m.config.Palette.Prefer),
	))
}

// syncSurfaces mounts a rich text for every text block, unmounts the rest
// and moves the text cursor to the focused block
func (m *Model) syncSurfaces() tea.Cmd {
	blocks := m.page.TextBlocks()
	keep := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		keep[b.ID] = true
		rt, created := m.surfaces.Mount(b.ID, b.Props.Text)
		if created {
			rt.AddListener(m.blockKeys, surface.Bubble)
		} else if rt.Value() != b.Props.Text {
			rt.SetValue(b.Props.Text)
		}
	}
	m.surfaces.Retain(keep)

	if m.palette != nil {
		if _, ok := m.surfaces.RichTextFor(m.palette.BlockID()); !ok {
			// the block went away under the palette
			if err := m.palette.Dismiss(); err != nil {
				m.logger.Debug("palette already ended", zap.Error(err))
			}
		}
	}

	focused := m.page.Awareness().Focused()
	if !keep[focused] && len(blocks) > 0 {
		focused = blocks[0].ID
		m.page.Focus(focused)
	}

	var cmd tea.Cmd
	for _, b := range blocks {
		rt, _ := m.surfaces.RichTextFor(b.ID)
		switch {
		case b.ID == focused && !rt.Focused():
			cmd = rt.Focus()
		case b.ID != focused && rt.Focused():
			rt.Blur()
		}
	}
	return cmd
}

// syncText copies a rich text's value into its block
func (m *Model) syncText(rt *surface.RichText) error {
	if b, ok := m.page.Block(rt.BlockID()); ok && b.Props.Text == rt.Value() {
		return nil
	}
	return m.page.SetText(rt.BlockID(), rt.Value())
}

func (m *Model) focusedRichText() (*surface.RichText, bool) {
	return m.surfaces.RichTextFor(m.page.Awareness().Focused())
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	case eventbus.ConfigSavedEvent:
		return m.setStatus("Config saved to "+e.Path, false)
	}
	return nil
}

// reportError logs err and shows it on the status line. Routing defects
// are logged as errors; everything else is a warning.
func (m *Model) reportError(err error) tea.Cmd {
	if errors.Is(err, palette.ErrInvariantViolation) {
		m.logger.Error("key routing failed", zap.Error(err))
	} else {
		m.logger.Warn("edit failed", zap.Error(err))
	}
	m.publish(eventbus.ErrorEvent{Message: err.Error(), Err: err})
	return m.setStatus(err.Error(), true)
}

func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		return m.setStatus("Help needs a terminal", true)
	}
	markdown := HelpMarkdown(m.input.Keys(), m.registry)
	width := m.width
	return func() tea.Msg {
		content, err := RenderHelp(markdown, width)
		if err != nil {
			return helpPagerMsg{err: err}
		}

		m.program.Send(pauseRenderingMsg{})
		err = m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// blockLines converts the page's text blocks for the renderer
func (m *Model) blockLines() []views.BlockLine {
	focused := m.page.Awareness().Focused()
	blocks := m.page.TextBlocks()
	lines := make([]views.BlockLine, 0, len(blocks))
	for _, b := range blocks {
		line := views.BlockLine{
			ID:      b.ID,
			Flavour: b.Flavour,
			Subtype: b.Props.Type,
			Checked: b.Props.Checked,
			Text:    b.Props.Text,
			Focused: b.ID == focused,
		}
		if rt, ok := m.surfaces.RichTextFor(b.ID); ok && line.Focused {
			line.Text = rt.View()
		}
		lines = append(lines, line)
	}
	return lines
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	blocks := m.blockLines()
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.page.Title(),
		Blocks:        blocks,
		Focused:       indexOfLine(blocks, m.page.Awareness().Focused()),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HelpView:      m.help.View(m.input.Keys()),
	}
	if m.palette != nil {
		state.Palette = &views.PaletteState{
			Entries:   m.palette.Filtered(),
			Active:    m.palette.Active(),
			Search:    m.palette.Search(),
			Placement: m.palette.Placement(),
		}
		if state.StatusMessage == "" {
			state.StatusMessage = "/" + m.palette.Search()
		}
	}

	view, region := m.renderer.Render(state)
	m.region = region
	return view
}

// Palette returns the open palette, or nil
func (m *Model) Palette() *palette.Palette {
	return m.palette
}

// Surfaces returns the mounted rich texts
func (m *Model) Surfaces() *surface.Registry {
	return m.surfaces
}

// Window returns the window key target
func (m *Model) Window() *surface.Target {
	return m.window
}

func indexOfBlock(blocks []*domain.Block, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func indexOfLine(lines []views.BlockLine, id string) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return 0
}

// editorContext exposes model state to the input handler
type editorContext struct {
	m *Model
}

func (c editorContext) FocusedBlockID() string {
	return c.m.page.Awareness().Focused()
}

func (c editorContext) FocusedIndex() int {
	return indexOfBlock(c.m.page.TextBlocks(), c.FocusedBlockID())
}

func (c editorContext) BlockCount() int {
	return len(c.m.page.TextBlocks())
}

func (c editorContext) FocusedText() string {
	if rt, ok := c.m.focusedRichText(); ok {
		return rt.Value()
	}
	return ""
}

func (c editorContext) CursorPosition() int {
	if rt, ok := c.m.focusedRichText(); ok {
		return rt.Position()
	}
	return 0
}

func (c editorContext) PaletteOpen() bool {
	return c.m.palette != nil
}

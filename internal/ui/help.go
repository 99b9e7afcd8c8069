package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"blockslash/internal/palette"
	"blockslash/internal/ui/input"
)

// HelpMarkdown builds the key reference and the list of block types
func HelpMarkdown(keys input.KeyMap, reg palette.Registry) string {
	var md strings.Builder
	md.WriteString("# blockslash\n\n")
	md.WriteString("## Editing\n\n")
	md.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			writeBindingRow(&md, b)
		}
	}

	md.WriteString("\n## Slash palette\n\n")
	md.WriteString("Type `/` in a text block to pick a block type. ")
	md.WriteString("Keep typing to narrow the list; names match without spaces or punctuation, ")
	md.WriteString("so type `heading1` for *Heading 1*.\n\n")
	md.WriteString("| Key | Action |\n|---|---|\n")
	md.WriteString("| ↑ / ↓ | move the highlight, wrapping around |\n")
	md.WriteString("| enter | apply the highlighted type |\n")
	md.WriteString("| ⌫ | shorten the search, or close when it is empty |\n")
	md.WriteString("| space, ← / → | close and keep typing |\n")
	md.WriteString("| esc | close |\n")

	md.WriteString("\n## Block types\n\n")
	for _, e := range reg.Entries() {
		if e.Type != "" {
			fmt.Fprintf(&md, "- %s %s (`%s`, %s)\n", e.Icon, e.Name, e.Flavour, e.Type)
		} else {
			fmt.Fprintf(&md, "- %s %s (`%s`)\n", e.Icon, e.Name, e.Flavour)
		}
	}
	return md.String()
}

func writeBindingRow(md *strings.Builder, b key.Binding) {
	h := b.Help()
	fmt.Fprintf(md, "| %s | %s |\n", h.Key, h.Desc)
}

// RenderHelp renders the help markdown for a terminal of the given width
func RenderHelp(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create help renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render help: %w", err)
	}
	return out, nil
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

package domain

// Flavour is the primary type tag of a block
type Flavour string

// Block flavours
const (
	FlavourPage      Flavour = "page"
	FlavourNote      Flavour = "note"
	FlavourParagraph Flavour = "paragraph"
	FlavourList      Flavour = "list"
	FlavourCode      Flavour = "code"
)

// IsText reports whether blocks of this flavour carry an editable rich text
func (f Flavour) IsText() bool {
	switch f {
	case FlavourParagraph, FlavourList, FlavourCode:
		return true
	default:
		return false
	}
}

// Props holds the attributes of a block
type Props struct {
	Type    string // subtype, e.g. "h1" or "bulleted"; empty when the flavour has none
	Text    string
	Checked bool // to-do list items only
}

// Block is a node in the document tree
type Block struct {
	ID       string
	Flavour  Flavour
	Props    Props
	ParentID string   // "" for the root
	Children []string // child block ids in display order
}

// Clone returns a copy that shares no slices with b
func (b *Block) Clone() *Block {
	c := *b
	c.Children = append([]string(nil), b.Children...)
	return &c
}

package block

// Type identifies how a block renders and behaves.
type Type string

const (
	Paragraph Type = "paragraph"
	Heading1  Type = "heading1"
	Heading2  Type = "heading2"
	Heading3  Type = "heading3"
	Bullet    Type = "bullet"
	Todo      Type = "todo"
	Code      Type = "code"
	Image     Type = "image"
)

// Types lists every known block type in display order.
func Types() []Type {
	return []Type{Paragraph, Heading1, Heading2, Heading3, Bullet, Todo, Code, Image}
}

// Valid reports whether t is a known block type.
func (t Type) Valid() bool {
	switch t {
	case Paragraph, Heading1, Heading2, Heading3, Bullet, Todo, Code, Image:
		return true
	default:
		return false
	}
}

// Block is one typed unit of content.
//
// Content uses the richtext grammar. Checked is only meaningful for Todo.
type Block struct {
	ID      string `json:"id" yaml:"id"`
	Type    Type   `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
	Checked bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
}

// Placement says where the cursor lands inside a focused block.
type Placement uint8

const (
	PlaceStart Placement = iota
	PlaceEnd
)

func (p Placement) String() string {
	if p == PlaceEnd {
		return "end"
	}
	return "start"
}

// Focus instructs the host to move input focus to a block.
type Focus struct {
	BlockID   string
	Placement Placement
}

// Cursor is the active insertion point: a block and a visible offset into
// its content.
type Cursor struct {
	BlockID string
	Offset  int
}

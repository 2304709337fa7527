package editor

import "github.com/iw2rmb/blockpad/block"

// IntentKind identifies the semantic action resolved from one key event.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentInsertBlock
	IntentRemoveBlock
	IntentFocusPrev
	IntentFocusNext
	IntentSpace
	IntentInsertText
	IntentDeleteText
	IntentMove
	IntentSelect
	IntentToggleChecked
	IntentDeleteBlock
	IntentAppendBlock
	IntentPolish
	IntentCopy
	IntentRetype
	IntentInlineStyle
)

func (k IntentKind) String() string {
	switch k {
	case IntentInsertBlock:
		return "insert-block"
	case IntentRemoveBlock:
		return "remove-block"
	case IntentFocusPrev:
		return "focus-prev"
	case IntentFocusNext:
		return "focus-next"
	case IntentSpace:
		return "space"
	case IntentInsertText:
		return "insert-text"
	case IntentDeleteText:
		return "delete-text"
	case IntentMove:
		return "move"
	case IntentSelect:
		return "select"
	case IntentToggleChecked:
		return "toggle-checked"
	case IntentDeleteBlock:
		return "delete-block"
	case IntentAppendBlock:
		return "append-block"
	case IntentPolish:
		return "polish"
	case IntentCopy:
		return "copy"
	case IntentRetype:
		return "retype"
	case IntentInlineStyle:
		return "inline-style"
	default:
		return "none"
	}
}

// Mutating reports whether the intent can change the document. Read-only
// editors drop mutating intents.
func (k IntentKind) Mutating() bool {
	switch k {
	case IntentNone, IntentFocusPrev, IntentFocusNext, IntentMove, IntentSelect, IntentCopy:
		return false
	default:
		return true
	}
}

// Intent is a typed action resolved from key processing.
type Intent struct {
	Kind    IntentKind
	BlockID string
	Payload any
}

// MoveDir identifies a cursor movement inside the focused block.
type MoveDir uint8

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome
	DirEnd
)

// TextPayload describes inserted text.
type TextPayload struct {
	Text string
}

// MovePayload describes a cursor move or selection extension.
type MovePayload struct {
	Dir MoveDir
}

// RetypePayload carries the target type of a toolbar retype.
type RetypePayload struct {
	Type block.Type
}

// StylePayload carries the inline style command of a toolbar action.
type StylePayload struct {
	Command StyleCommand
}

package block

// Op identifies the operation that produced a Change.
type Op uint8

const (
	OpNone Op = iota
	OpInsert
	OpRemove
	OpUpdateContent
	OpChangeType
	OpRetype
	OpToggleChecked
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpUpdateContent:
		return "update-content"
	case OpChangeType:
		return "change-type"
	case OpRetype:
		return "retype"
	case OpToggleChecked:
		return "toggle-checked"
	default:
		return "none"
	}
}

// Change describes one effective mutation. The zero Change (Op == OpNone)
// means the operation did nothing.
type Change struct {
	Op            Op
	BlockID       string
	VersionBefore uint64
	VersionAfter  uint64

	// Focus is set when the host should move input focus.
	Focus    Focus
	HasFocus bool
}

// Effective reports whether the change mutated the document.
func (c Change) Effective() bool { return c.Op != OpNone }

func (d Document) change(op Op, id string, next Document) Change {
	return Change{
		Op:            op,
		BlockID:       id,
		VersionBefore: d.version,
		VersionAfter:  next.version,
	}
}

func (c Change) withFocus(id string, p Placement) Change {
	c.Focus = Focus{BlockID: id, Placement: p}
	c.HasFocus = true
	return c
}

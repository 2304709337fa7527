package editor

import "github.com/iw2rmb/blockpad/block"

// ChangeEvent reports one effective document change to the host.
type ChangeEvent struct {
	// Document is the full document after the change; hosts persist it.
	Document block.Document
	Change   block.Change
}

// Blocks is a convenience for hosts that store the plain slice.
func (ev ChangeEvent) Blocks() []block.Block {
	return ev.Document.Blocks()
}

package block

// InsertAfter creates an empty block of type t right after anchorID, or at
// the end when anchorID is unknown. The change carries the new block id and
// a focus instruction for it.
func (d Document) InsertAfter(anchorID string, t Type) (Document, Change) {
	if !t.Valid() {
		t = Paragraph
	}
	nb := Block{ID: d.mintID(d.idSet()), Type: t}

	at := d.Index(anchorID) + 1
	if at <= 0 {
		at = len(d.blocks)
	}

	out := make([]Block, 0, len(d.blocks)+1)
	out = append(out, d.blocks[:at]...)
	out = append(out, nb)
	out = append(out, d.blocks[at:]...)

	next := d.with(out)
	return next, d.change(OpInsert, nb.ID, next).withFocus(nb.ID, PlaceStart)
}

// Append inserts an empty block of type t after the last block.
func (d Document) Append(t Type) (Document, Change) {
	last, _ := d.Last()
	return d.InsertAfter(last.ID, t)
}

// Remove deletes id unless it is the only block. The removed content is
// discarded. Focus moves to the previous block (cursor at end), or to the new
// first block (cursor at start) when the first block was removed.
func (d Document) Remove(id string) (Document, Change) {
	i := d.Index(id)
	if i < 0 || len(d.blocks) <= 1 {
		return d, Change{}
	}

	out := make([]Block, 0, len(d.blocks)-1)
	out = append(out, d.blocks[:i]...)
	out = append(out, d.blocks[i+1:]...)

	next := d.with(out)
	ch := d.change(OpRemove, id, next)
	if i > 0 {
		return next, ch.withFocus(d.blocks[i-1].ID, PlaceEnd)
	}
	return next, ch.withFocus(out[0].ID, PlaceStart)
}

// UpdateContent replaces the content of id verbatim.
func (d Document) UpdateContent(id, content string) (Document, Change) {
	return d.update(OpUpdateContent, id, func(b *Block) bool {
		if b.Content == content {
			return false
		}
		b.Content = content
		return true
	})
}

// ChangeType replaces the type of id and leaves content alone.
func (d Document) ChangeType(id string, t Type) (Document, Change) {
	if !t.Valid() {
		return d, Change{}
	}
	return d.update(OpChangeType, id, func(b *Block) bool {
		if b.Type == t {
			return false
		}
		b.Type = t
		return true
	})
}

// Retype replaces the type of id and clears its content in one change.
func (d Document) Retype(id string, t Type) (Document, Change) {
	if !t.Valid() {
		return d, Change{}
	}
	next, ch := d.update(OpRetype, id, func(b *Block) bool {
		if b.Type == t && b.Content == "" {
			return false
		}
		b.Type = t
		b.Content = ""
		return true
	})
	if ch.Effective() {
		ch = ch.withFocus(id, PlaceStart)
	}
	return next, ch
}

// ToggleChecked flips the checked flag of a todo block.
func (d Document) ToggleChecked(id string) (Document, Change) {
	return d.update(OpToggleChecked, id, func(b *Block) bool {
		if b.Type != Todo {
			return false
		}
		b.Checked = !b.Checked
		return true
	})
}

func (d Document) update(op Op, id string, fn func(*Block) bool) (Document, Change) {
	i := d.Index(id)
	if i < 0 {
		return d, Change{}
	}
	b := d.blocks[i]
	if !fn(&b) {
		return d, Change{}
	}
	out := d.Blocks()
	out[i] = b
	next := d.with(out)
	return next, d.change(op, id, next)
}

func (d Document) with(blocks []Block) Document {
	return Document{
		blocks:  blocks,
		version: d.version + 1,
		newID:   d.newID,
	}
}

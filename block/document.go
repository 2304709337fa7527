package block

import (
	"strconv"

	"github.com/google/uuid"
)

// Options configures document construction.
type Options struct {
	// NewID mints block ids. Default: uuid.NewString.
	NewID func() string
}

// Document is an immutable, never-empty ordered sequence of blocks with
// pairwise-distinct ids.
type Document struct {
	blocks  []Block
	version uint64
	newID   func() string
}

// New builds a Document from a host snapshot.
//
// The snapshot is normalized so the document invariants hold: an empty
// snapshot yields one empty paragraph, unknown types become Paragraph, and
// blocks with an empty or already-seen id get a fresh one.
func New(blocks []Block, opt Options) Document {
	if opt.NewID == nil {
		opt.NewID = uuid.NewString
	}
	d := Document{newID: opt.NewID}

	seen := make(map[string]struct{}, len(blocks))
	out := make([]Block, 0, max(len(blocks), 1))
	for _, b := range blocks {
		if !b.Type.Valid() {
			b.Type = Paragraph
		}
		if _, dup := seen[b.ID]; dup || b.ID == "" {
			b.ID = d.mintID(seen)
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	if len(out) == 0 {
		out = append(out, Block{ID: d.mintID(seen), Type: Paragraph})
	}
	d.blocks = out
	return d
}

// mintID returns an id not present in taken. A misbehaving generator that
// keeps repeating itself is disambiguated with a numeric suffix.
func (d Document) mintID(taken map[string]struct{}) string {
	gen := d.newID
	if gen == nil {
		gen = uuid.NewString
	}
	id := gen()
	if _, ok := taken[id]; !ok && id != "" {
		return id
	}
	for n := 1; ; n++ {
		cand := id + "-" + strconv.Itoa(n)
		if _, ok := taken[cand]; !ok {
			return cand
		}
	}
}

func (d Document) idSet() map[string]struct{} {
	taken := make(map[string]struct{}, len(d.blocks)+1)
	for _, b := range d.blocks {
		taken[b.ID] = struct{}{}
	}
	return taken
}

// Version increments on every effective change.
func (d Document) Version() uint64 { return d.version }

// Len returns the number of blocks.
func (d Document) Len() int { return len(d.blocks) }

// Blocks returns a copy of the blocks in order.
func (d Document) Blocks() []Block {
	return append([]Block(nil), d.blocks...)
}

// At returns the block at index i.
func (d Document) At(i int) (Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, false
	}
	return d.blocks[i], true
}

// Index returns the position of id, or -1.
func (d Document) Index(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the block with id.
func (d Document) Find(id string) (Block, bool) {
	return d.At(d.Index(id))
}

// Prev returns the block before id.
func (d Document) Prev(id string) (Block, bool) {
	i := d.Index(id)
	if i <= 0 {
		return Block{}, false
	}
	return d.At(i - 1)
}

// Next returns the block after id.
func (d Document) Next(id string) (Block, bool) {
	i := d.Index(id)
	if i < 0 {
		return Block{}, false
	}
	return d.At(i + 1)
}

// First returns the first block.
func (d Document) First() (Block, bool) { return d.At(0) }

// Last returns the last block.
func (d Document) Last() (Block, bool) { return d.At(len(d.blocks) - 1) }

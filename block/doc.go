// Package block implements the pure block document model: an ordered,
// never-empty sequence of typed content blocks and the structural operations
// over it.
//
// Documents are immutable values. Every operation returns the next Document
// together with a Change describing what happened (including any focus
// instruction for the host). Operations that reference a missing block are
// no-ops.
package block

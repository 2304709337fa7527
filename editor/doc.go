// Package editor provides a Bubble Tea block editor component backed by the
// block package.
//
// The package is responsible for key dispatch, markdown autoformat on space,
// the selection-anchored floating toolbar, the async AI polish bridge,
// rendering, and host integration hooks (change and focus events, clipboard,
// inline styling).
package editor

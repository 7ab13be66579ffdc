// Package keymap implements KeymapStore: the immutable, layered
// (layer, scancode) -> KeyAction lookup table of spec §4.2, plus a
// loader that builds one from a TOML or YAML layout document.
package keymap

import (
	"fmt"

	"github.com/kbfw/corekbd/keyaction"
)

// Store is a read-only, rectangular LayerCount x RowCount x ColCount
// table of key actions. It is built once at boot and never mutated
// afterward — spec.md's non-goal "no runtime keymap reloading". Set is its
// only mutator; it is exported, and within this module it is called only
// while a Store is being built (by the layout loaders and by tests).
type Store struct {
	rowCount, colCount int
	layers             [][]keyaction.Action // layers[layer][scancode-1]
}

// New allocates a Store of the given shape with every cell transparent
// (NoEvent).
func New(layerCount, rowCount, colCount int) *Store {
	if layerCount < 1 {
		layerCount = 1
	}
	layers := make([][]keyaction.Action, layerCount)
	for i := range layers {
		layers[i] = make([]keyaction.Action, rowCount*colCount)
	}
	return &Store{rowCount: rowCount, colCount: colCount, layers: layers}
}

// LayerCount, RowCount, ColCount report the Store's shape.
func (s *Store) LayerCount() int { return len(s.layers) }
func (s *Store) RowCount() int   { return s.rowCount }
func (s *Store) ColCount() int   { return s.colCount }

// Scancode derives the 1-based scancode for (row, col), per spec §3.
func Scancode(row, col, colCount int) uint8 {
	return uint8(row*colCount + col + 1)
}

// Set assigns the action for (layer, scancode) during construction. It
// panics on an out-of-range layer or scancode, matching the teacher's
// convention that precondition violations in low-level helpers are a
// caller bug, not a runtime error (spec §7.3, §9).
func (s *Store) Set(layer int, scancode uint8, a keyaction.Action) {
	if layer < 0 || layer >= len(s.layers) {
		panic(fmt.Sprintf("keymap: layer %d out of range [0,%d)", layer, len(s.layers)))
	}
	idx := int(scancode) - 1
	if idx < 0 || idx >= len(s.layers[layer]) {
		panic(fmt.Sprintf("keymap: scancode %d out of range", scancode))
	}
	s.layers[layer][idx] = a
}

// Load resolves (layer, scancode) to a KeyAction per spec §4.2:
//  1. layer 0 reads the base-layer cell directly.
//  2. any other layer falls back to the base-layer cell when its own
//     cell is NoEvent (raw zero).
func (s *Store) Load(layer int, scancode uint8) keyaction.Action {
	idx := int(scancode) - 1
	if idx < 0 {
		return keyaction.NoEvent()
	}
	if layer <= 0 || layer >= len(s.layers) {
		return s.cell(0, idx)
	}
	a := s.cell(layer, idx)
	if a.Tag == keyaction.TagNoEvent {
		return s.cell(0, idx)
	}
	return a
}

func (s *Store) cell(layer, idx int) keyaction.Action {
	if idx >= len(s.layers[layer]) {
		return keyaction.NoEvent()
	}
	return s.layers[layer][idx]
}

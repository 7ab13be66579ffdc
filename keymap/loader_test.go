package keymap_test

import (
	"strings"
	"testing"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/kbfw/corekbd/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellVariants(t *testing.T) {
	cases := []struct {
		cell string
		want keyaction.Action
	}{
		{"", keyaction.NoEvent()},
		{"TRANS", keyaction.NoEvent()},
		{"A", keyaction.Basic(keyaction.KeyA, 0)},
		{"LSFT+A", keyaction.Basic(keyaction.KeyA, keyaction.ModLeftShift)},
		{"DR(A,LSFT)", keyaction.DualRole(keyaction.KeyA, keyaction.ModLeftShift)},
		{"LAYER(1,MO)", keyaction.Layer(1, true)},
		{"LAYER(2,TG)", keyaction.Layer(2, false)},
		{"MACRO(7)", keyaction.Macro(7)},
		{"CONSUMER(PLAY)", keyaction.Consumer(keyaction.ConsumerPlayPause)},
		{"SYSTEM(SLEEP)", keyaction.System(keyaction.SystemSleep)},
		{"CONSUMER(0x00CD)", keyaction.Consumer(0x00CD)},
	}
	for _, tc := range cases {
		got, err := keymap.ParseCell(tc.cell)
		require.NoError(t, err, tc.cell)
		assert.Equal(t, tc.want, got, tc.cell)
	}
}

func TestParseCellUnknownNameErrors(t *testing.T) {
	_, err := keymap.ParseCell("NOPE")
	assert.Error(t, err)
}

func TestLoadTOMLBuildsBaseFallback(t *testing.T) {
	doc := `
rows = 1
cols = 2

[[layers]]
cells = []
`
	// go-toml layers as [][]string need a flat TOML array-of-arrays form.
	doc = `
rows = 1
cols = 2
layers = [["A", "B"], ["TRANS", "LAYER(0,MO)"]]
`
	store, err := keymap.LoadTOML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, store.LayerCount())

	sc0 := keymap.Scancode(0, 0, 2)
	sc1 := keymap.Scancode(0, 1, 2)

	assert.Equal(t, keyaction.Basic(keyaction.KeyA, 0), store.Load(0, sc0))
	assert.Equal(t, keyaction.Basic(keyaction.KeyB, 0), store.Load(0, sc1))

	// Layer 1's first cell is transparent, so it falls back to layer 0's "A".
	assert.Equal(t, keyaction.Basic(keyaction.KeyA, 0), store.Load(1, sc0))
	assert.Equal(t, keyaction.Layer(0, true), store.Load(1, sc1))
}

func TestLoadYAMLMatchesTOMLShape(t *testing.T) {
	doc := `
rows: 1
cols: 2
layers:
  - ["A", "B"]
`
	store, err := keymap.LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, store.LayerCount())
	assert.Equal(t, keyaction.Basic(keyaction.KeyA, 0), store.Load(0, keymap.Scancode(0, 0, 2)))
}

func TestLoadRejectsMismatchedCellCount(t *testing.T) {
	doc := `
rows = 2
cols = 2
layers = [["A", "B"]]
`
	_, err := keymap.LoadTOML(strings.NewReader(doc))
	assert.Error(t, err)
}

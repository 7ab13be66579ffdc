package keystate_test

import (
	"testing"

	"github.com/kbfw/corekbd/keystate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countActive(tr *keystate.Tracker) int {
	n := 0
	for i := 0; i < tr.Len(); i++ {
		if tr.Slot(i).Scancode != 0 {
			n++
		}
	}
	return n
}

func TestUpdateExactMatchReusesSlot(t *testing.T) {
	tr := keystate.New(4, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(1, false, 20))
	assert.Equal(t, 1, countActive(tr))
	assert.Equal(t, keystate.Key{Scancode: 1, Down: false, Toggles: 2, EventTime: 20, PriorTime: 10}, tr.Slot(0))
}

func TestRolloverOverflowIsDroppedSilently(t *testing.T) {
	// P1: number of active slots never exceeds Rollover.
	tr := keystate.New(2, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(2, true, 11))
	ok := tr.Update(3, true, 12) // both slots held down, no room
	assert.False(t, ok)
	assert.Equal(t, 2, countActive(tr))
}

func TestAgedSlotIsReusableByNextPress(t *testing.T) {
	// P2: an inactive, aged-out slot is available for a new scancode.
	tr := keystate.New(1, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(1, false, 20))
	// Not yet aged out, but inactive: with no empty slot, the press at tick
	// 25 reuses it as the oldest inactive slot instead of being dropped.
	assert.True(t, tr.Update(2, true, 25))
	// Past the tapping interval, the slot still belongs to scancode 2.
	require.True(t, tr.Update(2, true, 80))
	assert.Equal(t, uint8(2), tr.Slot(0).Scancode)
}

func TestToggleStreakResetsOutsideTappingInterval(t *testing.T) {
	tr := keystate.New(1, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(1, false, 200)) // well beyond the interval
	assert.Equal(t, uint8(1), tr.Slot(0).Toggles)
}

func TestPriorTimePreservedAcrossExactMatchUpdate(t *testing.T) {
	tr := keystate.New(1, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(1, false, 30))
	// priorTime should be the timestamp of the press (10), so that tap
	// duration (eventTime - priorTime) measures 30-10=20.
	assert.Equal(t, keystate.Tick(10), tr.Slot(0).PriorTime)
	assert.Equal(t, keystate.Tick(30), tr.Slot(0).EventTime)
}

func TestPriorTimeResetOnSlotReuseForDifferentScancode(t *testing.T) {
	tr := keystate.New(1, 50)
	require.True(t, tr.Update(1, true, 10))
	require.True(t, tr.Update(1, false, 20))
	require.True(t, tr.Update(2, true, 80)) // slot reused for a new scancode
	assert.Equal(t, keystate.Tick(80), tr.Slot(0).PriorTime)
}

func TestElapsedHandlesTickWraparound(t *testing.T) {
	var maxTick keystate.Tick = ^keystate.Tick(0)
	// now wrapped just past the max; t was shortly before the wrap.
	got := keystate.Elapsed(5, maxTick-2)
	assert.Equal(t, keystate.Tick(8), got)
}

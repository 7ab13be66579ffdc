package keyaction_test

import (
	"testing"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/stretchr/testify/assert"
)

func TestNoEventIsAllZero(t *testing.T) {
	assert.Equal(t, uint16(0), keyaction.NoEvent().EncodeRaw())
	assert.Equal(t, keyaction.NoEvent(), keyaction.DecodeRaw(0))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []keyaction.Action{
		keyaction.Basic(keyaction.KeyA, 0),
		keyaction.Basic(keyaction.KeyEscape, keyaction.ModLeftCtrl),
		keyaction.DualRole(keyaction.KeyEscape, keyaction.ModLeftCtrl),
		keyaction.Consumer(keyaction.ConsumerVolumeUp),
		keyaction.System(keyaction.SystemSleep),
		keyaction.Macro(42),
		keyaction.Layer(1, true),
		keyaction.Layer(3, false),
	}
	for _, c := range cases {
		raw := c.EncodeRaw()
		assert.Equal(t, c, keyaction.DecodeRaw(raw), "roundtrip for %+v", c)
	}
}

func TestModifierUsageDetection(t *testing.T) {
	assert.True(t, keyaction.IsModifierUsage(keyaction.UsageLeftControl))
	assert.True(t, keyaction.IsModifierUsage(keyaction.UsageRightGUI))
	assert.False(t, keyaction.IsModifierUsage(keyaction.KeyA))

	assert.Equal(t, keyaction.ModLeftCtrl, keyaction.ModifierBit(keyaction.UsageLeftControl))
	assert.Equal(t, keyaction.ModRightGUI, keyaction.ModifierBit(keyaction.UsageRightGUI))
}

func TestDecodeRawIgnoresTagWhenZero(t *testing.T) {
	// Any all-zero raw value is transparent, regardless of how it was produced.
	assert.Equal(t, keyaction.TagNoEvent, keyaction.DecodeRaw(0).Tag)
}

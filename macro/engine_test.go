package macro_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/kbfw/corekbd/macro"
	"github.com/kbfw/corekbd/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	reports []report.Model
	failAt  int // -1 disables
}

func (f *fakeSink) SendBasicReport(m report.Model) error {
	if f.failAt >= 0 && len(f.reports) == f.failAt {
		return errors.New("sink full")
	}
	f.reports = append(f.reports, m)
	return nil
}

type fakeSleeper struct {
	slept []time.Duration
}

func (f *fakeSleeper) Sleep(d time.Duration) { f.slept = append(f.slept, d) }

func TestRunLeftGuiCEmitsOneCoalescedReport(t *testing.T) {
	// spec §8 scenario 6: Down LeftGui, Down 'C', End.
	sink := &fakeSink{failAt: -1}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	stream := []byte{
		byte(macro.MacroKeyDown), keyaction.UsageLeftGUI,
		byte(macro.MacroKeyDown), keyaction.KeyC,
		byte(macro.MacroEnd),
	}
	err := eng.Run(report.Model{}, stream)
	require.NoError(t, err)

	require.Len(t, sink.reports, 1)
	assert.Equal(t, keyaction.ModLeftGUI, sink.reports[0].Mods)
	assert.Equal(t, uint8(keyaction.KeyC), sink.reports[0].Keys[0])
	assert.Len(t, sleeper.slept, 1)
	assert.Equal(t, macro.InterReportDelay, sleeper.slept[0])
}

func TestRunEmitsPerNonModifierKey(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	stream := []byte{
		byte(macro.MacroKeyDown), keyaction.KeyH,
		byte(macro.MacroKeyUp), keyaction.KeyH,
		byte(macro.MacroKeyDown), keyaction.KeyI,
		byte(macro.MacroEnd),
	}
	err := eng.Run(report.Model{}, stream)
	require.NoError(t, err)

	require.Len(t, sink.reports, 3)
	assert.Equal(t, uint8(keyaction.KeyH), sink.reports[0].Keys[0])
	assert.Equal(t, uint8(0), sink.reports[1].Keys[0])
	assert.Equal(t, uint8(keyaction.KeyI), sink.reports[2].Keys[0])
	assert.Len(t, sleeper.slept, 3)
}

func TestRunModifierToggleCoalescesUntilEnd(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	stream := []byte{
		byte(macro.MacroKeyToggle), keyaction.UsageLeftShift,
		byte(macro.MacroKeyToggle), keyaction.UsageLeftControl,
		byte(macro.MacroEnd),
	}
	err := eng.Run(report.Model{}, stream)
	require.NoError(t, err)

	require.Len(t, sink.reports, 1)
	assert.Equal(t, keyaction.ModLeftShift|keyaction.ModLeftCtrl, sink.reports[0].Mods)
}

func TestRunTerminatesOnUnknownOpcode(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	stream := []byte{
		byte(macro.MacroKeyDown), keyaction.KeyA,
		0x7F, // unknown opcode
		byte(macro.MacroKeyDown), keyaction.KeyB,
		byte(macro.MacroEnd),
	}
	err := eng.Run(report.Model{}, stream)
	require.NoError(t, err)

	// Only the first Down('A') should have emitted; the stream halts at
	// the unknown opcode and never reaches 'B'.
	require.Len(t, sink.reports, 1)
	assert.Equal(t, uint8(keyaction.KeyA), sink.reports[0].Keys[0])
}

func TestRunOperatesOnACopyOfStartingReport(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	start := report.Model{Mods: keyaction.ModLeftShift}
	stream := []byte{byte(macro.MacroKeyDown), keyaction.KeyA, byte(macro.MacroEnd)}
	err := eng.Run(start, stream)
	require.NoError(t, err)

	// start itself is unmodified (passed by value); the emitted report
	// carries both the starting modifier and the new key.
	assert.Equal(t, keyaction.ModLeftShift, start.Mods)
	assert.Equal(t, uint8(0), start.Keys[0])
	require.Len(t, sink.reports, 1)
	assert.Equal(t, keyaction.ModLeftShift, sink.reports[0].Mods)
	assert.Equal(t, uint8(keyaction.KeyA), sink.reports[0].Keys[0])
}

func TestRunPropagatesSinkError(t *testing.T) {
	sink := &fakeSink{failAt: 0}
	sleeper := &fakeSleeper{}
	eng := macro.New(sink, sleeper)

	stream := []byte{byte(macro.MacroKeyDown), keyaction.KeyA, byte(macro.MacroEnd)}
	err := eng.Run(report.Model{}, stream)
	assert.Error(t, err)
}

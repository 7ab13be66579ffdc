// Package macro implements MacroEngine: a byte-coded interpreter that
// replays a stored macro against a starting HID report, emitting one or
// more reports to a Sink with the 32 ms inter-report spacing a host
// needs to register each keystroke (spec §4.4).
package macro

import (
	"time"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/kbfw/corekbd/report"
)

// Opcode identifies a single macro byte-stream instruction.
type Opcode uint8

const (
	MacroEnd       Opcode = 0
	MacroKeyDown   Opcode = 1
	MacroKeyUp     Opcode = 2
	MacroKeyToggle Opcode = 3
)

// InterReportDelay is the minimum spacing MacroEngine waits between
// reports it sends to the sink, per spec §4.4.
const InterReportDelay = 32 * time.Millisecond

// Sink is the subset of the report sink a running macro needs.
type Sink interface {
	SendBasicReport(m report.Model) error
}

// Sleeper abstracts the 32 ms inter-report wait so tests can run a
// macro without actually blocking.
type Sleeper interface {
	Sleep(d time.Duration)
}

// RealSleeper sleeps for real; used outside of tests.
type RealSleeper struct{}

func (RealSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Engine runs macro byte streams against a Sink.
type Engine struct {
	sink    Sink
	sleeper Sleeper
}

// New returns an Engine that emits through sink, using sleeper for the
// inter-report delay. Pass RealSleeper{} outside of tests.
func New(sink Sink, sleeper Sleeper) *Engine {
	return &Engine{sink: sink, sleeper: sleeper}
}

// Run executes the macro byte stream against a copy of startingReport,
// per spec §4.4's run(starting_report, macro_id) procedure. Run takes no
// macro id: the caller resolves the id to its byte stream and passes the
// stream itself.
func (e *Engine) Run(startingReport report.Model, stream []byte) error {
	working := startingReport
	pendingEmit := false

	i := 0
	for i < len(stream) {
		op := Opcode(stream[i])
		i++

		if op == MacroEnd {
			if pendingEmit {
				if err := e.emit(working); err != nil {
					return err
				}
			}
			return nil
		}

		if op != MacroKeyDown && op != MacroKeyUp && op != MacroKeyToggle {
			// Unknown opcode: terminate, liberal with corrupt streams.
			return nil
		}
		if i >= len(stream) {
			// Truncated operand: terminate.
			return nil
		}
		k := stream[i]
		i++

		if keyaction.IsModifierUsage(k) {
			bit := keyaction.ModifierBit(k)
			switch op {
			case MacroKeyDown:
				working.Mods |= bit
			case MacroKeyUp:
				working.Mods &^= bit
			case MacroKeyToggle:
				working.Mods ^= bit
			}
			pendingEmit = true
			continue
		}

		switch op {
		case MacroKeyDown:
			working.AddKey(k)
		case MacroKeyUp:
			working.ClearKey(k)
		case MacroKeyToggle:
			working.ToggleKey(k)
		}
		if err := e.emit(working); err != nil {
			return err
		}
		pendingEmit = false
	}

	// Stream ran off the end without a MacroEnd: flush any pending
	// modifier-only change, same as hitting MacroEnd.
	if pendingEmit {
		return e.emit(working)
	}
	return nil
}

func (e *Engine) emit(m report.Model) error {
	if err := e.sink.SendBasicReport(m); err != nil {
		return err
	}
	e.sleeper.Sleep(InterReportDelay)
	return nil
}

package dispatch

import (
	"context"
	"log/slog"

	"github.com/kbfw/corekbd/keyaction"
	"github.com/kbfw/corekbd/keymap"
	"github.com/kbfw/corekbd/keystate"
	"github.com/kbfw/corekbd/macro"
	"github.com/kbfw/corekbd/report"
)

// MacroLookup resolves a KeyAction.MacroID to its byte-coded stream.
// A nil or empty return terminates the macro immediately.
type MacroLookup func(id uint16) []byte

// Dispatcher drives the scan cadence and owns all per-tick state: the
// active layer, the previous pass's timestamp, and the collaborators
// named in spec §4.5 (tracker, scanner, sink, macro engine).
type Dispatcher struct {
	scanner ScanSource
	sink    ReportSink
	clock   TickSource
	sleeper Sleeper

	tracker *keystate.Tracker
	store   *keymap.Store
	engine  *macro.Engine
	lookup  MacroLookup
	logger  *slog.Logger

	tappingInterval keystate.Tick
	colCount        int

	currentLayer  uint8
	lastStateTick keystate.Tick
}

// engineSinkAdapter lets Dispatcher's ReportSink satisfy macro.Sink
// without macro importing dispatch.
type engineSinkAdapter struct{ sink ReportSink }

func (a engineSinkAdapter) SendBasicReport(m report.Model) error { return a.sink.SendBasicReport(m) }

// New assembles a Dispatcher. rollover and tappingInterval parameterize
// the internal KeyStateTracker; colCount is only used to translate a
// scanned (row, col) delta into a scancode, via keymap.Scancode(row, col, colCount).
// logger may be nil, in which case dropped-report conditions (spec §7.1's
// Overload policy) pass silently rather than being logged.
func New(scanner ScanSource, sink ReportSink, clock TickSource, sleeper Sleeper, store *keymap.Store, rollover int, tappingInterval keystate.Tick, colCount int, lookup MacroLookup, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		scanner:         scanner,
		sink:            sink,
		clock:           clock,
		sleeper:         sleeper,
		tracker:         keystate.New(rollover, tappingInterval),
		store:           store,
		tappingInterval: tappingInterval,
		colCount:        colCount,
		lookup:          lookup,
		logger:          logger,
	}
	d.engine = macro.New(engineSinkAdapter{sink}, sleeper)
	return d
}

// logDrop records a non-fatal sink failure (spec §4.5 Failure semantics:
// "Sink send failures are non-fatal… the next pass will try again").
func (d *Dispatcher) logDrop(kind string, err error) {
	if d.logger != nil {
		d.logger.Warn("sink send dropped", "kind", kind, "error", err)
	}
}

// Run executes Tick in a loop, sleeping ScanCadence between passes,
// until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := d.Tick(); err != nil {
			return err
		}
		d.sleeper.Sleep(ScanCadence)
	}
}

// Tick runs a single dispatcher pass per spec §4.5 steps 2-9 (step 1,
// the periodic sleep, is the caller's/Run's responsibility so a single
// Tick can be driven synchronously from tests).
func (d *Dispatcher) Tick() error {
	now := d.clock.Now()
	changed := d.scanner.Scan()
	if changed {
		d.applyMatrixDeltas(now)
	}

	working := report.Model{}
	pendingMacroScancode := uint8(0)

	d.runLayerPass()

	var releaseExtras, pressExtras []report.ExtraKey

	for i := 0; i < d.tracker.Len(); i++ {
		key := d.tracker.Slot(i)
		if key.Scancode == 0 {
			continue
		}
		action := d.store.Load(int(d.currentLayer), key.Scancode)

		if key.Down {
			switch action.Tag {
			case keyaction.TagBasic:
				d.applyModifiersOrKey(&working, action)
			case keyaction.TagDualRole:
				working.Mods |= action.Mods
			case keyaction.TagConsumer:
				pressExtras = append(pressExtras, report.ExtraKey{Channel: report.ChannelConsumer, Usage: action.Usage})
			case keyaction.TagSystem:
				pressExtras = append(pressExtras, report.ExtraKey{Channel: report.ChannelSystem, Usage: action.Usage})
			case keyaction.TagMacro:
				// Deferred to release; nothing to do on press.
			case keyaction.TagLayer:
				// Handled in the layer pass.
			}
			continue
		}

		if int32(key.EventTime-d.lastStateTick) <= 0 {
			continue // not a fresh release this pass
		}
		isTap := keystate.Elapsed(key.EventTime, key.PriorTime) <= d.tappingInterval
		switch action.Tag {
		case keyaction.TagDualRole:
			if isTap {
				flush := report.Model{Mods: working.Mods}
				if err := d.sink.SendBasicReport(flush); err != nil {
					d.logDrop("basic", err)
				}
				d.sleeper.Sleep(TapFlushDelay)
				working.AddKey(action.Code)
			}
		case keyaction.TagMacro:
			if isTap {
				pendingMacroScancode = key.Scancode
			}
		case keyaction.TagConsumer:
			releaseExtras = append(releaseExtras, report.ExtraKey{Channel: report.ChannelConsumer, Usage: 0})
		case keyaction.TagSystem:
			releaseExtras = append(releaseExtras, report.ExtraKey{Channel: report.ChannelSystem, Usage: 0})
		}
	}

	for _, e := range releaseExtras {
		if err := d.sink.SendExtraKey(e); err != nil {
			d.logDrop("extra", err)
		}
	}
	for _, e := range pressExtras {
		if err := d.sink.SendExtraKey(e); err != nil {
			d.logDrop("extra", err)
		}
	}

	// The macro runs before the pass's final basic report is sent (spec
	// §4.5 steps 7-8; original_source/Dispatcher.h:208-220 likewise calls
	// runMacro before basicReport), so that report clears whatever keys
	// the macro left held rather than leaving them stuck until next tick.
	if pendingMacroScancode != 0 {
		macroAction := d.store.Load(int(d.currentLayer), pendingMacroScancode)
		stream := d.lookup(macroAction.MacroID)
		if err := d.engine.Run(working, stream); err != nil {
			d.logDrop("macro", err)
		}
	}

	if err := d.sink.SendBasicReport(working); err != nil {
		d.logDrop("basic", err)
	}

	d.lastStateTick = now
	return nil
}

// applyModifiersOrKey implements the Basic-action rule of spec §4.5 step
// 6: a modifier usage contributes only a modifier bit, never a key slot.
func (d *Dispatcher) applyModifiersOrKey(working *report.Model, action keyaction.Action) {
	working.Mods |= action.Mods
	if keyaction.IsModifierUsage(action.Code) {
		working.Mods |= keyaction.ModifierBit(action.Code)
		return
	}
	working.AddKey(action.Code)
}

// applyMatrixDeltas implements spec §4.5 step 3: every (row, col) whose
// bit differs between prior and current becomes a tracker update.
func (d *Dispatcher) applyMatrixDeltas(now keystate.Tick) {
	current := d.scanner.Current()
	prior := d.scanner.Prior()
	for row := range current {
		var p RowBitmap
		if row < len(prior) {
			p = prior[row]
		}
		diff := current[row] ^ p
		if diff == 0 {
			continue
		}
		for col := 0; col < d.colCount; col++ {
			bit := RowBitmap(1) << uint(col)
			if diff&bit == 0 {
				continue
			}
			down := current[row]&bit != 0
			scancode := keymap.Scancode(row, col, d.colCount)
			d.tracker.Update(scancode, down, now)
		}
	}
}

// runLayerPass implements spec §4.5 step 5: fresh Layer-key transitions
// update CurrentLayer before the action pass resolves anything.
func (d *Dispatcher) runLayerPass() {
	for i := 0; i < d.tracker.Len(); i++ {
		key := d.tracker.Slot(i)
		if key.Scancode == 0 || int32(key.EventTime-d.lastStateTick) < 0 {
			continue
		}
		action := d.store.Load(int(d.currentLayer), key.Scancode)
		if action.Tag != keyaction.TagLayer {
			continue
		}
		if key.Down {
			d.currentLayer = action.LayerID
		} else if action.Momentary {
			d.currentLayer = 0
		}
	}
}

// CurrentLayer reports the dispatcher's active layer, mainly for tests
// and diagnostics.
func (d *Dispatcher) CurrentLayer() uint8 { return d.currentLayer }

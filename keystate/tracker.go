// Package keystate implements KeyStateTracker: a bounded set of tracked
// physical keys with press/release timestamps, tap-streak counting, and
// aging by tapping interval (spec §4.3).
package keystate

// Tick is a monotonically increasing count in RTOS tick-period units.
// Comparisons always subtract two Ticks and treat the result as the
// unsigned distance between them (spec §3, §9): never compare raw Tick
// values with <.
type Tick = uint32

// Elapsed returns the number of ticks between an earlier event at t and
// the current tick now, correct across a Tick wraparound as long as the
// true distance is well under half the Tick range (always true for a
// tapping interval of a few hundred milliseconds).
func Elapsed(now, t Tick) Tick {
	return now - t
}

// Key is a single tracked-key slot (spec §3's TrackedKey).
type Key struct {
	Scancode  uint8 // 0 means the slot is empty
	Down      bool
	Toggles   uint8 // consecutive down/up flips within the tapping interval; capped at 127 (7 bits)
	EventTime Tick  // timestamp of the most recent transition
	PriorTime Tick  // timestamp of the previous transition of the same key
}

// Tracker is a fixed-capacity KeyStateTracker. It is touched only by the
// dispatcher task; no synchronization is required (spec §5).
type Tracker struct {
	tappingInterval Tick
	slots           []Key
}

// New returns a Tracker with the given slot capacity (Rollover) and
// tapping interval in Ticks.
func New(rollover int, tappingInterval Tick) *Tracker {
	return &Tracker{
		tappingInterval: tappingInterval,
		slots:           make([]Key, rollover),
	}
}

// Len returns the tracker's slot capacity (Rollover).
func (t *Tracker) Len() int { return len(t.slots) }

// Slot returns a copy of the i'th tracked slot for read-only iteration
// (spec §4.3 "Iteration"). Callers should skip entries with Scancode == 0.
func (t *Tracker) Slot(i int) Key { return t.slots[i] }

// ageSlots implements step 1 of Update: any inactive slot whose event is
// older than the tapping interval becomes eligible for reuse.
func (t *Tracker) ageSlots(now Tick) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.Scancode != 0 && !s.Down && Elapsed(now, s.EventTime) > t.tappingInterval {
			s.Scancode = 0
		}
	}
}

// findSlot implements the slot-finding policy of spec §4.3: an exact
// scancode match wins outright; otherwise prefer an empty slot over the
// oldest inactive one; if neither exists, report none (the event is
// dropped under an invariant-preserving Rollover overflow).
func (t *Tracker) findSlot(scancode uint8, now Tick) (int, bool) {
	available := -1
	oldest := -1
	for i := range t.slots {
		s := &t.slots[i]
		if s.Scancode == scancode {
			return i, true
		}
		if available != -1 {
			continue
		}
		if s.Scancode == 0 {
			available = i
			continue
		}
		if !s.Down {
			if oldest == -1 || Elapsed(now, s.EventTime) > Elapsed(now, t.slots[oldest].EventTime) {
				oldest = i
			}
		}
	}
	if available != -1 {
		return available, true
	}
	if oldest != -1 {
		return oldest, true
	}
	return 0, false
}

// Update implements the KeyStateTracker update procedure of spec §4.3.
// It reports false when the event was dropped (Rollover exhausted by
// currently-held keys, the Overload policy of spec §7).
func (t *Tracker) Update(scancode uint8, down bool, now Tick) bool {
	t.ageSlots(now)

	idx, ok := t.findSlot(scancode, now)
	if !ok {
		return false
	}
	s := &t.slots[idx]

	if s.Scancode == scancode && s.Down != down && Elapsed(now, s.EventTime) <= t.tappingInterval {
		if s.Toggles < 0x7F {
			s.Toggles++
		}
	} else {
		s.Toggles = 1
	}

	if s.Scancode != scancode {
		s.PriorTime = now
	} else {
		s.PriorTime = s.EventTime
	}

	s.Scancode = scancode
	s.Down = down
	s.EventTime = now
	return true
}

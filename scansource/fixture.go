// Package scansource provides ScanSource implementations: a scripted
// fixture for tests and a terminal-keyboard-driven live demo source.
package scansource

import "github.com/kbfw/corekbd/dispatch"

// Frame is one scripted matrix sample: the full set of per-row column
// bitmaps at a point in time.
type Frame []dispatch.RowBitmap

// Fixture replays a fixed sequence of Frames, one per Scan() call, for
// deterministic tests of anything built atop ScanSource.
type Fixture struct {
	frames  []Frame
	idx     int
	prior   []dispatch.RowBitmap
	current []dispatch.RowBitmap
}

// NewFixture returns a Fixture that will replay frames in order. Calling
// Scan() more times than len(frames) panics, since a test script that
// runs off the end of its own data is a test bug.
func NewFixture(frames ...Frame) *Fixture {
	return &Fixture{frames: frames}
}

func (f *Fixture) Scan() bool {
	if f.idx >= len(f.frames) {
		panic("scansource: fixture exhausted")
	}
	f.prior = f.current
	f.current = []dispatch.RowBitmap(f.frames[f.idx])
	f.idx++
	return !rowsEqual(f.prior, f.current)
}

func (f *Fixture) Current() []dispatch.RowBitmap { return f.current }
func (f *Fixture) Prior() []dispatch.RowBitmap   { return f.prior }

func rowsEqual(a, b []dispatch.RowBitmap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

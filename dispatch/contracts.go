// Package dispatch implements the Dispatcher: the per-tick orchestrator
// that turns matrix deltas into HID reports via KeyStateTracker,
// KeymapStore, and MacroEngine (spec §4.5).
package dispatch

import (
	"time"

	"github.com/kbfw/corekbd/keystate"
	"github.com/kbfw/corekbd/report"
)

// RowBitmap holds one scanned row's column bits; bit N set means column N
// is pressed. Wide enough for any realistic ColCount.
type RowBitmap = uint32

// ScanSource is the abstract matrix scanner the dispatcher consumes
// (spec §4.6). Scan samples the matrix and returns whether any bit
// changed since the previous call, shifting Current into Prior as a
// side effect. Current/Prior return read-only per-row bitmaps.
type ScanSource interface {
	Scan() bool
	Current() []RowBitmap
	Prior() []RowBitmap
}

// ReportSink is the bounded command queue boundary to the USB/BLE task
// (spec §4.7). Implementations apply their own timeout/dedup policy;
// a non-nil error here is treated as "dropped", never fatal.
type ReportSink interface {
	SendBasicReport(m report.Model) error
	SendExtraKey(e report.ExtraKey) error
}

// TickSource supplies the dispatcher's notion of "now" in Tick units
// (spec §3). A real build derives this from the RTOS tick counter; tests
// supply a scripted source.
type TickSource interface {
	Now() keystate.Tick
}

// Sleeper abstracts the dispatcher's periodic scan-cadence sleep and the
// dual-role tap-flush sleep so tests can run a pass without blocking.
type Sleeper interface {
	Sleep(d time.Duration)
}

// RealSleeper sleeps for real; used outside of tests.
type RealSleeper struct{}

func (RealSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// ScanCadence is the dispatcher's periodic sleep between passes (spec §4.5 step 1).
const ScanCadence = 30 * time.Millisecond

// TapFlushDelay is the sleep after a dual-role tap's modifiers-only
// intermediate report (spec §4.5 step 6, same contract as MacroEngine's
// inter-report delay).
const TapFlushDelay = 32 * time.Millisecond

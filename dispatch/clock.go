package dispatch

import (
	"time"

	"github.com/kbfw/corekbd/keystate"
)

// RealClock turns wall-clock elapsed time into Tick units at a fixed
// tick period, for a live build with no RTOS tick source underneath it.
type RealClock struct {
	start      time.Time
	tickPeriod time.Duration
}

// NewRealClock returns a RealClock starting "now", counting ticks of
// tickPeriod duration each.
func NewRealClock(tickPeriod time.Duration) *RealClock {
	return &RealClock{start: time.Now(), tickPeriod: tickPeriod}
}

func (c *RealClock) Now() keystate.Tick {
	return keystate.Tick(time.Since(c.start) / c.tickPeriod)
}

package renderer

import (
	"log/slog"
	"time"
)

// Clock is the time source used for frame pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the wall clock and sleeps for real.
type SystemClock struct{}

// Now returns the current time with monotonic clock reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Pacer holds frames to a fixed interval. It never skips frames or catches
// up: a late frame is reported and the next one starts immediately.
type Pacer struct {
	clock    Clock
	overruns int

	// OnBehind, when set, is called for every late frame.
	OnBehind func(elapsed, interval time.Duration)
}

// NewPacer creates a pacer. A nil clock uses SystemClock.
func NewPacer(clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{clock: clock}
}

// Wait sleeps until interval has passed since start. If more than interval
// has already passed it logs a warning, counts an overrun and returns
// without sleeping. It returns the elapsed time and whether the frame was
// late.
func (p *Pacer) Wait(start time.Time, interval time.Duration) (time.Duration, bool) {
	elapsed := p.clock.Now().Sub(start)
	switch {
	case elapsed < interval:
		p.clock.Sleep(interval - elapsed)
		return elapsed, false
	case elapsed > interval:
		p.overruns++
		slog.Warn("running behind schedule",
			"elapsed", elapsed,
			"interval", interval,
			"overruns", p.overruns,
		)
		if p.OnBehind != nil {
			p.OnBehind(elapsed, interval)
		}
		return elapsed, true
	}
	return elapsed, false
}

// Overruns returns the number of late frames seen so far.
func (p *Pacer) Overruns() int {
	return p.overruns
}

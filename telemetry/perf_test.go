package telemetry

import (
	"math"
	"testing"
	"time"
)

// steppedClock advances by a fixed step each time it is read.
type steppedClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppedClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestCollector(window int, step time.Duration) *PerfCollector {
	pc := NewPerfCollector(window)
	pc.now = (&steppedClock{t: time.Unix(0, 0), step: step}).Now
	return pc
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := newTestCollector(10, 100*time.Microsecond)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePerception)
		pc.StartPhase(PhaseMovement)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 300*time.Microsecond {
		t.Errorf("expected 300us average tick, got %v", stats.AvgTickDuration)
	}

	if _, ok := stats.PhaseAvg[PhasePerception]; !ok {
		t.Error("expected perception phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseMovement]; !ok {
		t.Error("expected movement phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := newTestCollector(5, time.Microsecond) // Small window

	// Fill window more than once
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpatialGrid)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &steppedClock{t: time.Unix(0, 0)}
	pc.now = clock.Now

	// Uneven phase durations: feeding 10us, perception 90us
	for i := 0; i < 5; i++ {
		clock.step = 0
		pc.StartTick()
		pc.StartPhase(PhaseFeeding)
		clock.step = 10 * time.Microsecond
		pc.StartPhase(PhasePerception)
		clock.step = 90 * time.Microsecond
		pc.EndTick()
	}

	stats := pc.Stats()

	if math.Abs(stats.PhasePct[PhaseFeeding]-10) > 1e-9 {
		t.Errorf("feeding = %v%%, want 10%%", stats.PhasePct[PhaseFeeding])
	}
	if math.Abs(stats.PhasePct[PhasePerception]-90) > 1e-9 {
		t.Errorf("perception = %v%%, want 90%%", stats.PhasePct[PhasePerception])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}

	if stats.FPS != 0 {
		t.Errorf("expected zero FPS without frames, got %v", stats.FPS)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(4)

	// Oldest frame falls out of the window.
	pc.RecordFrame(100*time.Millisecond, true)
	for _, ms := range []int{10, 20, 20, 30} {
		pc.RecordFrame(time.Duration(ms)*time.Millisecond, ms > 25)
	}

	stats := pc.Stats()

	if math.Abs(stats.FrameMeanMS-20) > 1e-9 {
		t.Errorf("frame mean = %v, want 20", stats.FrameMeanMS)
	}
	if math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("fps = %v, want 50", stats.FPS)
	}
	if stats.FrameP50MS != 20 {
		t.Errorf("frame p50 = %v, want 20", stats.FrameP50MS)
	}
	if stats.FrameP95MS != 30 {
		t.Errorf("frame p95 = %v, want 30", stats.FrameP95MS)
	}
	if stats.FrameStdMS <= 0 {
		t.Error("expected positive frame std-dev")
	}
	if stats.Overruns != 2 || pc.Overruns() != 2 {
		t.Errorf("overruns = %d, want 2", stats.Overruns)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct:        map[string]float64{PhasePerception: 60, PhaseCleanup: 5},
		Overruns:        3,
	}

	rec := s.ToCSV(2, 400)
	if rec.Episode != 2 || rec.Tick != 400 {
		t.Errorf("unexpected episode/tick %d/%d", rec.Episode, rec.Tick)
	}
	if rec.AvgTickUS != 250 || rec.PerceptionPct != 60 || rec.CleanupPct != 5 || rec.Overruns != 3 {
		t.Errorf("unexpected record %+v", rec)
	}
}

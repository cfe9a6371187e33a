package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseSnapshot    = "snapshot"
	PhaseSpatialGrid = "spatial_grid"
	PhasePerception  = "perception"
	PhaseMemory      = "memory"
	PhaseFeeding     = "feeding"
	PhaseMovement    = "movement"
	PhaseFlora       = "flora"
	PhaseCleanup     = "cleanup"
)

// phases lists the step phases in execution order.
var phases = []string{
	PhaseSnapshot, PhaseSpatialGrid, PhasePerception, PhaseMemory,
	PhaseFeeding, PhaseMovement, PhaseFlora, PhaseCleanup,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing: tick start to end of presentation
	frames     []float64 // milliseconds
	frameIndex int
	frameCount int
	overruns   int
	now        func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		frames:        make([]float64, windowSize),
		now:           time.Now,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records how long a frame took from tick start to presentation
// and whether it missed its interval.
func (p *PerfCollector) RecordFrame(elapsed time.Duration, behind bool) {
	p.frames[p.frameIndex] = float64(elapsed) / float64(time.Millisecond)
	p.frameIndex = (p.frameIndex + 1) % p.windowSize
	if p.frameCount < p.windowSize {
		p.frameCount++
	}
	if behind {
		p.overruns++
	}
}

// Overruns returns the total number of late frames recorded.
func (p *PerfCollector) Overruns() int {
	return p.overruns
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (animated mode), milliseconds
	FrameMeanMS float64
	FrameStdMS  float64
	FrameP50MS  float64
	FrameP95MS  float64
	FPS         float64
	Overruns    int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		Overruns: p.overruns,
	}
	p.frameStats(&s)

	if p.sampleCount == 0 {
		return s
	}

	var totalTick time.Duration
	phaseSum := make(map[string]time.Duration)

	// Iterate over valid samples
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		totalTick += sample.TickDuration

		if i == 0 || sample.TickDuration < s.MinTickDuration {
			s.MinTickDuration = sample.TickDuration
		}
		if sample.TickDuration > s.MaxTickDuration {
			s.MaxTickDuration = sample.TickDuration
		}

		for phase, dur := range sample.Phases {
			phaseSum[phase] += dur
		}
	}

	s.AvgTickDuration = totalTick / time.Duration(p.sampleCount)

	for phase, sum := range phaseSum {
		s.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if s.AvgTickDuration > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / float64(s.AvgTickDuration) * 100
		}
	}

	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}

	return s
}

// frameStats fills the frame timing fields from the frame window.
func (p *PerfCollector) frameStats(s *PerfStats) {
	if p.frameCount == 0 {
		return
	}
	sorted := slices.Clone(p.frames[:p.frameCount])
	slices.Sort(sorted)

	s.FrameMeanMS = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.FrameStdMS = stat.StdDev(sorted, nil)
	}
	s.FrameP50MS = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.FrameP95MS = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	if s.FrameMeanMS > 0 {
		s.FPS = 1000 / s.FrameMeanMS
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs,
			slog.Float64("fps", s.FPS),
			slog.Float64("frame_mean_ms", s.FrameMeanMS),
			slog.Float64("frame_p95_ms", s.FrameP95MS),
			slog.Int("overruns", s.Overruns),
		)
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Episode        int     `csv:"episode"`
	Tick           int     `csv:"tick"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	FrameMeanMS    float64 `csv:"frame_mean_ms"`
	FrameStdMS     float64 `csv:"frame_std_ms"`
	FrameP50MS     float64 `csv:"frame_p50_ms"`
	FrameP95MS     float64 `csv:"frame_p95_ms"`
	Overruns       int     `csv:"overruns"`
	SnapshotPct    float64 `csv:"snapshot_pct"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	PerceptionPct  float64 `csv:"perception_pct"`
	MemoryPct      float64 `csv:"memory_pct"`
	FeedingPct     float64 `csv:"feeding_pct"`
	MovementPct    float64 `csv:"movement_pct"`
	FloraPct       float64 `csv:"flora_pct"`
	CleanupPct     float64 `csv:"cleanup_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(episode, tick int) PerfStatsCSV {
	return PerfStatsCSV{
		Episode:        episode,
		Tick:           tick,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		FrameMeanMS:    s.FrameMeanMS,
		FrameStdMS:     s.FrameStdMS,
		FrameP50MS:     s.FrameP50MS,
		FrameP95MS:     s.FrameP95MS,
		Overruns:       s.Overruns,
		SnapshotPct:    s.PhasePct[PhaseSnapshot],
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		PerceptionPct:  s.PhasePct[PhasePerception],
		MemoryPct:      s.PhasePct[PhaseMemory],
		FeedingPct:     s.PhasePct[PhaseFeeding],
		MovementPct:    s.PhasePct[PhaseMovement],
		FloraPct:       s.PhasePct[PhaseFlora],
		CleanupPct:     s.PhasePct[PhaseCleanup],
	}
}

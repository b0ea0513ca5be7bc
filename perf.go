package vantage

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	// frameBudgetMs is the per-frame budget at 60fps.
	frameBudgetMs = 1000.0 / 60.0
	// spikeThresholdMs is 1.5x the 60fps budget; a single frame over this
	// counts as dropped and is sufficient to fire a degrade signal.
	spikeThresholdMs = frameBudgetMs * 1.5

	defaultWindowSize = 60
	// memorySampleEvery spaces out RSS reads; gopsutil calls are not free.
	memorySampleEvery = 120
)

// PerformanceSample is one frame's timing record.
type PerformanceSample struct {
	TimestampMs  float64
	FrameDeltaMs float64
	FPS          float64
}

// PerformanceSnapshot is the read-only metrics view published to subscribers.
type PerformanceSnapshot struct {
	FPS              float64
	AverageFPS       float64
	DroppedFrames    int
	ActiveAnimations int
	MemoryMB         float64
}

// PerformanceMonitor keeps a bounded rolling window of frame samples and
// fires degrade/upgrade signals from the windowed average. It depends only
// on the timestamps the host feeds it, which keeps it fully deterministic
// under test.
type PerformanceMonitor struct {
	samples []PerformanceSample
	head    int
	count   int

	lastTimestampMs float64
	hasLast         bool

	degradeFPS float64
	upgradeFPS float64

	droppedFrames    int
	activeAnimations int

	// Hysteresis: upgrades are suppressed until a full window has passed
	// since the last degrade signal.
	framesSinceDegrade int

	onDegrade func(nowMs float64)
	onUpgrade func(nowMs float64)

	proc        *process.Process
	memoryMB    float64
	frameNumber int
}

// NewPerformanceMonitor creates a monitor with the given window size and
// signal thresholds. Zero or negative arguments get the defaults
// (60 samples, degrade under 45fps, upgrade at 55fps).
func NewPerformanceMonitor(windowSize int, degradeFPS, upgradeFPS float64) *PerformanceMonitor {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	if degradeFPS <= 0 {
		degradeFPS = 45
	}
	if upgradeFPS <= 0 {
		upgradeFPS = 55
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil // memory estimates simply stay at zero
	}
	return &PerformanceMonitor{
		samples:            make([]PerformanceSample, windowSize),
		degradeFPS:         degradeFPS,
		upgradeFPS:         upgradeFPS,
		framesSinceDegrade: windowSize,
		proc:               proc,
	}
}

// SetSignalHandlers wires the degrade/upgrade callbacks, typically to
// QualityManager.Degrade and Upgrade.
func (m *PerformanceMonitor) SetSignalHandlers(onDegrade, onUpgrade func(nowMs float64)) {
	m.onDegrade = onDegrade
	m.onUpgrade = onUpgrade
}

// SetActiveAnimations records the scheduler's current run count for the
// metrics snapshot.
func (m *PerformanceMonitor) SetActiveAnimations(n int) {
	m.activeAnimations = n
}

// RecordFrame ingests one frame timestamp (milliseconds, any monotonic
// origin). The first call only seeds the baseline. Must be called before the
// scheduler advances animations for the same tick so quality decisions see
// current timing.
func (m *PerformanceMonitor) RecordFrame(tsMs float64) {
	m.frameNumber++
	if m.proc != nil && m.frameNumber%memorySampleEvery == 1 {
		if info, err := m.proc.MemoryInfo(); err == nil {
			m.memoryMB = float64(info.RSS) / (1024 * 1024)
		}
	}

	if !m.hasLast {
		m.hasLast = true
		m.lastTimestampMs = tsMs
		return
	}

	delta := tsMs - m.lastTimestampMs
	if delta <= 0 {
		// Duplicate or backwards timestamp: ignore it and keep the last good
		// baseline, so the next frame's delta is not measured from the bogus
		// value.
		return
	}
	m.lastTimestampMs = tsMs

	fps := 1000.0 / delta
	m.push(PerformanceSample{TimestampMs: tsMs, FrameDeltaMs: delta, FPS: fps})

	spike := delta > spikeThresholdMs
	if spike {
		m.droppedFrames++
	}

	m.framesSinceDegrade++

	if spike || (m.windowFull() && m.AverageFPS() < m.degradeFPS) {
		m.framesSinceDegrade = 0
		if m.onDegrade != nil {
			m.onDegrade(tsMs)
		}
		return
	}

	if m.windowFull() && m.AverageFPS() >= m.upgradeFPS && m.framesSinceDegrade >= len(m.samples) {
		if m.onUpgrade != nil {
			m.onUpgrade(tsMs)
		}
	}
}

func (m *PerformanceMonitor) push(s PerformanceSample) {
	m.samples[m.head] = s
	m.head = (m.head + 1) % len(m.samples)
	if m.count < len(m.samples) {
		m.count++
	}
}

func (m *PerformanceMonitor) windowFull() bool {
	return m.count == len(m.samples)
}

// FPS returns the instantaneous FPS of the most recent frame.
func (m *PerformanceMonitor) FPS() float64 {
	if m.count == 0 {
		return 0
	}
	idx := (m.head - 1 + len(m.samples)) % len(m.samples)
	return m.samples[idx].FPS
}

// AverageFPS returns the windowed average FPS, derived from total elapsed
// time rather than a mean of instantaneous values so that slow frames weigh
// in proportionally.
func (m *PerformanceMonitor) AverageFPS() float64 {
	if m.count == 0 {
		return 0
	}
	var totalMs float64
	for i := 0; i < m.count; i++ {
		totalMs += m.samples[(m.head-1-i+2*len(m.samples))%len(m.samples)].FrameDeltaMs
	}
	if totalMs <= 0 {
		return 0
	}
	return float64(m.count) * 1000.0 / totalMs
}

// Snapshot returns the current read-only metrics.
func (m *PerformanceMonitor) Snapshot() PerformanceSnapshot {
	return PerformanceSnapshot{
		FPS:              m.FPS(),
		AverageFPS:       m.AverageFPS(),
		DroppedFrames:    m.droppedFrames,
		ActiveAnimations: m.activeAnimations,
		MemoryMB:         m.memoryMB,
	}
}

// WindowSize returns the monitor's sample capacity.
func (m *PerformanceMonitor) WindowSize() int {
	return len(m.samples)
}

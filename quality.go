package vantage

// QualityLevel is an ordered performance tier. Higher values mean richer
// animation; the manager walks the ladder one level at a time.
type QualityLevel uint8

const (
	QualityMinimal QualityLevel = iota
	QualityLow
	QualityMedium
	QualityHigh
	QualityHighest
)

// String returns the level name used in logs and the debug overlay.
func (q QualityLevel) String() string {
	switch q {
	case QualityMinimal:
		return "minimal"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// OptimizationBundle is the set of per-level flags consumed by the movement
// controller and the render surface.
type OptimizationBundle struct {
	MaxDurationMs  float64
	ForceFrameSkip bool
	GPUHint        bool
	CullOffscreen  bool
}

// bundles indexes OptimizationBundle by QualityLevel.
var bundles = [5]OptimizationBundle{
	QualityMinimal: {MaxDurationMs: 350, ForceFrameSkip: true, GPUHint: false, CullOffscreen: true},
	QualityLow:     {MaxDurationMs: 600, ForceFrameSkip: true, GPUHint: false, CullOffscreen: true},
	QualityMedium:  {MaxDurationMs: 900, ForceFrameSkip: false, GPUHint: true, CullOffscreen: true},
	QualityHigh:    {MaxDurationMs: 1200, ForceFrameSkip: false, GPUHint: true, CullOffscreen: true},
	QualityHighest: {MaxDurationMs: 1600, ForceFrameSkip: false, GPUHint: true, CullOffscreen: false},
}

type qualityListener struct {
	id uint32
	fn func(level QualityLevel, bundle OptimizationBundle)
}

// QualityManager walks the five-level ladder in response to the performance
// monitor's degrade/upgrade signals. Transitions move exactly one level and
// respect a minimum dwell time, so a noisy FPS signal cannot make the level
// oscillate.
type QualityManager struct {
	level            QualityLevel
	dwellMs          float64
	lastTransitionMs float64
	hasTransitioned  bool

	listeners []qualityListener
	nextID    uint32
}

// NewQualityManager starts at the highest level with the given dwell time.
func NewQualityManager(dwellMs float64) *QualityManager {
	if dwellMs < 0 {
		dwellMs = 0
	}
	return &QualityManager{
		level:   QualityHighest,
		dwellMs: dwellMs,
	}
}

// Level returns the current quality level.
func (m *QualityManager) Level() QualityLevel {
	return m.level
}

// Bundle returns the optimization flags for the current level.
func (m *QualityManager) Bundle() OptimizationBundle {
	return bundles[m.level]
}

// BundleFor returns the optimization flags for an arbitrary level.
func BundleFor(level QualityLevel) OptimizationBundle {
	if int(level) >= len(bundles) {
		level = QualityHighest
	}
	return bundles[level]
}

// Degrade steps one level down. nowMs is the monitor's frame timestamp; the
// step is refused inside the dwell window of the previous transition.
// Returns true if the level changed.
func (m *QualityManager) Degrade(nowMs float64) bool {
	if m.level == QualityMinimal || !m.dwellElapsed(nowMs) {
		return false
	}
	m.transition(m.level-1, nowMs)
	return true
}

// Upgrade steps one level up, subject to the same dwell window.
// Returns true if the level changed.
func (m *QualityManager) Upgrade(nowMs float64) bool {
	if m.level == QualityHighest || !m.dwellElapsed(nowMs) {
		return false
	}
	m.transition(m.level+1, nowMs)
	return true
}

func (m *QualityManager) dwellElapsed(nowMs float64) bool {
	if !m.hasTransitioned {
		return true
	}
	return nowMs-m.lastTransitionMs >= m.dwellMs
}

func (m *QualityManager) transition(to QualityLevel, nowMs float64) {
	m.level = to
	m.lastTransitionMs = nowMs
	m.hasTransitioned = true
	bundle := bundles[to]
	for _, l := range m.listeners {
		l.fn(to, bundle)
	}
}

// QualityHandle removes a level-change listener.
type QualityHandle struct {
	id  uint32
	mgr *QualityManager
}

// Remove unregisters the listener so it no longer fires.
func (h QualityHandle) Remove() {
	if h.mgr == nil {
		return
	}
	for i := range h.mgr.listeners {
		if h.mgr.listeners[i].id == h.id {
			copy(h.mgr.listeners[i:], h.mgr.listeners[i+1:])
			h.mgr.listeners[len(h.mgr.listeners)-1] = qualityListener{}
			h.mgr.listeners = h.mgr.listeners[:len(h.mgr.listeners)-1]
			return
		}
	}
}

// OnLevelChange registers a listener fired on every transition with the new
// level and its bundle. Listeners re-apply optimizations immediately.
func (m *QualityManager) OnLevelChange(fn func(level QualityLevel, bundle OptimizationBundle)) QualityHandle {
	m.nextID++
	m.listeners = append(m.listeners, qualityListener{id: m.nextID, fn: fn})
	return QualityHandle{id: m.nextID, mgr: m}
}

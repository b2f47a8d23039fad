package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Section is a timed slice of a session tick.
type Section int

const (
	SectionReconfigure Section = iota // pending resize and layout rebuild
	SectionSchedule                   // phase bookkeeping and entry actions
	SectionInterpolate                // per-tick ease and buffer sync
	SectionSway
	SectionRender
	SectionTelemetry
	numSections
)

var sectionNames = [numSections]string{
	"reconfigure", "schedule", "interpolate", "sway", "render", "telemetry",
}

func (s Section) String() string {
	if s < 0 || s >= numSections {
		return "unknown"
	}
	return sectionNames[s]
}

// Sections returns every section in log and CSV order.
func Sections() []Section {
	out := make([]Section, numSections)
	for i := range out {
		out[i] = Section(i)
	}
	return out
}

type tickSample struct {
	total    time.Duration
	kind     string
	sections [numSections]time.Duration
}

// TickProfiler times the sections of each tick over a ring of recent ticks
// and attributes every tick to the phase kind that was active when it began.
// Not safe for concurrent use.
type TickProfiler struct {
	ring []tickSample
	next int
	n    int

	cur       tickSample
	inTick    bool
	section   Section
	tickStart time.Time
	mark      time.Time

	now func() time.Time
}

// NewTickProfiler creates a profiler averaging over the last window ticks.
func NewTickProfiler(window int) *TickProfiler {
	if window < 1 {
		window = 60
	}
	return &TickProfiler{
		ring:    make([]tickSample, window),
		section: -1,
		now:     time.Now,
	}
}

// StartTick opens a tick spent in a phase of the given kind.
func (p *TickProfiler) StartTick(kind string) {
	t := p.now()
	p.cur = tickSample{kind: kind}
	p.inTick = true
	p.section = -1
	p.tickStart, p.mark = t, t
}

// Enter closes the running section and starts timing s. Time between
// StartTick and the first Enter is not attributed to any section.
func (p *TickProfiler) Enter(s Section) {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closeSection(t)
	p.section = s
	p.mark = t
}

// EndTick closes the tick and stores it in the ring.
func (p *TickProfiler) EndTick() {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closeSection(t)
	p.cur.total = t.Sub(p.tickStart)
	p.inTick = false

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.n = min(p.n+1, len(p.ring))
}

func (p *TickProfiler) closeSection(t time.Time) {
	if p.section >= 0 && p.section < numSections {
		p.cur.sections[p.section] += t.Sub(p.mark)
	}
}

// TickStats summarises the ticks in the profiler window.
type TickStats struct {
	Ticks int
	Mean  time.Duration
	P90   time.Duration
	Max   time.Duration

	// Mean time per tick in each section
	Section [numSections]time.Duration

	// Mean tick cost while each phase kind was active
	KindMean map[string]time.Duration
}

// Stats aggregates the window. An empty window yields zero values and a
// non-nil KindMean.
func (p *TickProfiler) Stats() TickStats {
	st := TickStats{Ticks: p.n, KindMean: make(map[string]time.Duration)}
	if p.n == 0 {
		return st
	}

	totals := make([]float64, p.n)
	kindSum := make(map[string]time.Duration)
	kindCount := make(map[string]int)
	var sections [numSections]time.Duration
	for i, s := range p.ring[:p.n] {
		totals[i] = float64(s.total)
		for j, d := range s.sections {
			sections[j] += d
		}
		kindSum[s.kind] += s.total
		kindCount[s.kind]++
	}

	sort.Float64s(totals)
	st.Mean = time.Duration(stat.Mean(totals, nil))
	st.P90 = time.Duration(Percentile(totals, 0.9))
	st.Max = time.Duration(totals[len(totals)-1])
	for j := range sections {
		st.Section[j] = sections[j] / time.Duration(p.n)
	}
	for kind, sum := range kindSum {
		st.KindMean[kind] = sum / time.Duration(kindCount[kind])
	}
	return st
}

// Share returns the section's percentage of the mean tick.
func (s TickStats) Share(sec Section) float64 {
	if s.Mean <= 0 || sec < 0 || sec >= numSections {
		return 0
	}
	return float64(s.Section[sec]) / float64(s.Mean) * 100
}

// SlowestKind returns the phase kind with the highest mean tick cost.
func (s TickStats) SlowestKind() (string, time.Duration) {
	var kind string
	var worst time.Duration
	for k, d := range s.KindMean {
		if d > worst || (d == worst && k < kind) {
			kind, worst = k, d
		}
	}
	return kind, worst
}

// LogValue implements slog.LogValuer.
func (s TickStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("mean_us", s.Mean.Microseconds()),
		slog.Int64("p90_us", s.P90.Microseconds()),
		slog.Int64("max_us", s.Max.Microseconds()),
	}
	for _, sec := range Sections() {
		if pct := s.Share(sec); pct > 0.1 {
			attrs = append(attrs, slog.Float64(sec.String()+"_pct", pct))
		}
	}
	if kind, d := s.SlowestKind(); kind != "" {
		attrs = append(attrs, slog.String("slowest_kind", kind), slog.Int64("slowest_kind_us", d.Microseconds()))
	}
	return slog.GroupValue(attrs...)
}

// TickStatsCSV is one perf.csv row.
type TickStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	Particles      int     `csv:"particles"`
	MeanUS         int64   `csv:"mean_us"`
	P90US          int64   `csv:"p90_us"`
	MaxUS          int64   `csv:"max_us"`
	ReconfigurePct float64 `csv:"reconfigure_pct"`
	SchedulePct    float64 `csv:"schedule_pct"`
	InterpolatePct float64 `csv:"interpolate_pct"`
	SwayPct        float64 `csv:"sway_pct"`
	RenderPct      float64 `csv:"render_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
	SlowestKind    string  `csv:"slowest_kind"`
	SlowestKindUS  int64   `csv:"slowest_kind_us"`
}

// ToCSV flattens the stats for perf.csv.
func (s TickStats) ToCSV(windowEnd int32, particles int) TickStatsCSV {
	kind, d := s.SlowestKind()
	return TickStatsCSV{
		WindowEnd:      windowEnd,
		Particles:      particles,
		MeanUS:         s.Mean.Microseconds(),
		P90US:          s.P90.Microseconds(),
		MaxUS:          s.Max.Microseconds(),
		ReconfigurePct: s.Share(SectionReconfigure),
		SchedulePct:    s.Share(SectionSchedule),
		InterpolatePct: s.Share(SectionInterpolate),
		SwayPct:        s.Share(SectionSway),
		RenderPct:      s.Share(SectionRender),
		TelemetryPct:   s.Share(SectionTelemetry),
		SlowestKind:    kind,
		SlowestKindUS:  d.Microseconds(),
	}
}

package game

import (
	"log/slog"
	"sort"
	"time"
)

// Phase is one timed part of a control-loop iteration.
type Phase int

// Phases in loop order.
const (
	PhaseTick       Phase = iota // one population update
	PhaseRepopulate              // fitness, selection and the new world
	PhaseTelemetry               // stats, callback, log and CSV row
	numPhases
)

var phaseNames = [numPhases]string{"tick", "repopulate", "telemetry"}

func (ph Phase) String() string {
	if ph < 0 || ph >= numPhases {
		return "unknown"
	}
	return phaseNames[ph]
}

// phaseWindow is a ring of recent samples with a running sum.
type phaseWindow struct {
	samples []time.Duration
	next    int
	sum     time.Duration
}

func (w *phaseWindow) add(d time.Duration, size int) {
	if len(w.samples) < size {
		w.samples = append(w.samples, d)
		w.sum += d
		return
	}
	w.sum += d - w.samples[w.next]
	w.samples[w.next] = d
	w.next = (w.next + 1) % size
}

func (w *phaseWindow) avg() time.Duration {
	if len(w.samples) == 0 {
		return 0
	}
	return w.sum / time.Duration(len(w.samples))
}

// PerfStats keeps rolling averages of the last window samples per phase.
// Ticks are sampled every iteration; repopulate and telemetry once per
// generation, so their windows span many generations.
type PerfStats struct {
	window int
	phases [numPhases]phaseWindow
}

// NewPerfStats creates a tracker keeping the last window samples per phase.
func NewPerfStats(window int) *PerfStats {
	if window < 1 {
		window = 120
	}
	return &PerfStats{window: window}
}

// Record adds a duration sample for a phase. Unknown phases are ignored.
func (p *PerfStats) Record(ph Phase, d time.Duration) {
	if ph < 0 || ph >= numPhases {
		return
	}
	p.phases[ph].add(d, p.window)
}

// Avg returns the rolling average for a phase.
func (p *PerfStats) Avg(ph Phase) time.Duration {
	if ph < 0 || ph >= numPhases {
		return 0
	}
	return p.phases[ph].avg()
}

// Total is the sum of the phase averages.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for ph := Phase(0); ph < numPhases; ph++ {
		total += p.Avg(ph)
	}
	return total
}

// Sorted returns the phases that have samples, slowest first.
func (p *PerfStats) Sorted() []Phase {
	out := make([]Phase, 0, numPhases)
	for ph := Phase(0); ph < numPhases; ph++ {
		if len(p.phases[ph].samples) > 0 {
			out = append(out, ph)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return p.Avg(out[i]) > p.Avg(out[j])
	})
	return out
}

// LogValue implements slog.LogValuer.
func (p *PerfStats) LogValue() slog.Value {
	phases := p.Sorted()
	attrs := make([]slog.Attr, 0, len(phases)+1)
	attrs = append(attrs, slog.Duration("total", p.Total()))
	for _, ph := range phases {
		attrs = append(attrs, slog.Duration(ph.String(), p.Avg(ph)))
	}
	return slog.GroupValue(attrs...)
}

package match

import "sync"

// Progress is a snapshot of search progress. Processed counts candidate
// evaluations across every pass of the search; Total grows when a second
// pass starts. Percent never decreases within one search.
type Progress struct {
	Percent   float64
	Processed int
	Total     int
}

// progressReporter publishes Progress snapshots to a caller channel without
// ever blocking a worker. A dropped snapshot is superseded by a later one.
type progressReporter struct {
	mu        sync.Mutex
	ch        chan<- Progress
	processed int
	total     int
	// span maps the current pass onto [base, base+span] percent
	base, span  float64
	passStart   int
	passTotal   int
	lastPercent float64
}

func newProgressReporter(ch chan<- Progress) *progressReporter {
	return &progressReporter{ch: ch}
}

// beginPass starts a pass of n evaluations covering the percent range
// [from, to].
func (p *progressReporter) beginPass(n int, from, to float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.passStart = p.processed
	p.passTotal = n
	p.total += n
	p.base = from
	p.span = to - from
}

// add records delta finished evaluations of the current pass.
func (p *progressReporter) add(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed += delta
	if p.processed > p.total {
		p.processed = p.total
	}
	pct := p.base + p.span
	if p.passTotal > 0 {
		pct = p.base + p.span*float64(p.processed-p.passStart)/float64(p.passTotal)
	}
	p.publish(pct)
}

// finish publishes the final 100% snapshot.
func (p *progressReporter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = p.total
	p.publish(100)
}

// publish must be called with the lock held.
func (p *progressReporter) publish(pct float64) {
	if pct < p.lastPercent {
		pct = p.lastPercent
	}
	if pct > 100 {
		pct = 100
	}
	p.lastPercent = pct
	if p.ch == nil {
		return
	}
	select {
	case p.ch <- Progress{Percent: pct, Processed: p.processed, Total: p.total}:
	default:
	}
}

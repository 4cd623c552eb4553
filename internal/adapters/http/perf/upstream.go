package perf

import "time"

// UpstreamObserver feeds gym API call timings into a collector. It
// satisfies the gym API client's observer interface, so the status page
// can rank slow upstream endpoints next to slow routes and queries.
type UpstreamObserver struct {
	Collector *Collector
}

// ObserveCall records one upstream call as a KindUpstream entry.
func (o *UpstreamObserver) ObserveCall(op string, status int, d time.Duration) {
	o.Collector.Record(Entry{
		Kind:       KindUpstream,
		Path:       op,
		StatusCode: status,
		DurationMs: float64(d.Microseconds()) / 1000.0,
		Timestamp:  time.Now(),
	})
}

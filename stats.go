package multilog

import "sync/atomic"

type stats struct {
	filtered  atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of the dispatcher counters.
// Delivered and Failed count per-sink deliveries, Filtered counts calls
// dropped by the enabled flag or the level gate.
type StatsSnapshot struct {
	Filtered  uint64
	Delivered uint64
	Failed    uint64
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Filtered:  s.filtered.Load(),
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
	}
}

func (s *stats) reset() {
	s.filtered.Store(0)
	s.delivered.Store(0)
	s.failed.Store(0)
}

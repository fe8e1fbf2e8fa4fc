package registry

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Stats is a point-in-time snapshot of registry activity.
type Stats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Sets          int64 `json:"sets"`
	Deletes       int64 `json:"deletes"`
	Clears        int64 `json:"clears"`
	ClearFailures int64 `json:"clearFailures"`
	DecodeErrors  int64 `json:"decodeErrors"`
	Namespaces    int   `json:"namespaces"`
	Memberships   int   `json:"memberships"`
}

type counters struct {
	hits          *xsync.Counter
	misses        *xsync.Counter
	sets          *xsync.Counter
	deletes       *xsync.Counter
	clears        *xsync.Counter
	clearFailures *xsync.Counter
	decodeErrors  *xsync.Counter
}

func newCounters() *counters {
	return &counters{
		hits:          xsync.NewCounter(),
		misses:        xsync.NewCounter(),
		sets:          xsync.NewCounter(),
		deletes:       xsync.NewCounter(),
		clears:        xsync.NewCounter(),
		clearFailures: xsync.NewCounter(),
		decodeErrors:  xsync.NewCounter(),
	}
}

// Stats returns counters accumulated since the registry was created along
// with the current shape of the namespace index.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	namespaces := len(r.index)
	memberships := 0
	for _, keys := range r.index {
		memberships += len(keys)
	}
	r.mu.RUnlock()

	return Stats{
		Hits:          r.stats.hits.Value(),
		Misses:        r.stats.misses.Value(),
		Sets:          r.stats.sets.Value(),
		Deletes:       r.stats.deletes.Value(),
		Clears:        r.stats.clears.Value(),
		ClearFailures: r.stats.clearFailures.Value(),
		DecodeErrors:  r.stats.decodeErrors.Value(),
		Namespaces:    namespaces,
		Memberships:   memberships,
	}
}

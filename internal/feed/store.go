// Package feed maintains the in-memory observation store and the two
// ingestion paths that fill it: the live-feed batch loop and the meteo
// poller. The analytics engine never sees the store; it evaluates the
// immutable snapshots the store hands out.
package feed

import (
	"sort"
	"sync"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// DefaultRetention bounds the store at roughly ninety days of hourly data.
const DefaultRetention = 2160

// Store holds the rolling window of observations behind a mutex. Append
// keeps the series ordered by timestamp and evicts the oldest observations
// once retention is exceeded.
type Store struct {
	mu        sync.Mutex
	series    domain.Series
	retention int
}

// NewStore creates a Store retaining at most retention observations.
// Non-positive retention falls back to DefaultRetention.
func NewStore(retention int) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{retention: retention}
}

// Append adds observations to the store, restoring timestamp order when the
// new entries land out of sequence, and trims to the retention bound.
func (s *Store) Append(obs ...domain.Observation) {
	if len(obs) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := len(s.series) == 0 || !obs[0].Timestamp.Before(s.series[len(s.series)-1].Timestamp)
	for i := 1; ordered && i < len(obs); i++ {
		ordered = !obs[i].Timestamp.Before(obs[i-1].Timestamp)
	}

	s.series = append(s.series, obs...)
	if !ordered {
		sort.SliceStable(s.series, func(a, b int) bool {
			return s.series[a].Timestamp.Before(s.series[b].Timestamp)
		})
	}

	if excess := len(s.series) - s.retention; excess > 0 {
		s.series = append(domain.Series(nil), s.series[excess:]...)
	}
}

// Snapshot returns a copy of the current series. Callers own the copy; the
// engine treats it as immutable.
func (s *Store) Snapshot() domain.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.Series, len(s.series))
	copy(out, s.series)
	return out
}

// Len returns the number of observations currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.series)
}

// Conditions derives the latest current-conditions snapshot from the store.
func (s *Store) Conditions() (domain.Conditions, bool) {
	return domain.LatestConditions(s.Snapshot())
}

package store

import (
	"errors"
	"sync"
	"time"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

var (
	// ErrNotFound is returned when no comparison view has been stored yet,
	// or no view falls inside a requested range.
	ErrNotFound = errors.New("no comparison data available")
)

// MemoryStore is a concurrency-safe in-memory history of comparison views.
type MemoryStore struct {
	mu sync.RWMutex

	views []weather.ComparisonView

	// retention configuration
	maxHistory int           // max number of views
	maxAge     time.Duration // optional max age for views
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveView appends a new view and enforces retention.
func (s *MemoryStore) SaveView(view weather.ComparisonView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views = append(s.views, view)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.views) > s.maxHistory {
		over := len(s.views) - s.maxHistory
		s.views = s.views[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.views); i++ {
			if !s.views[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.views) {
			s.views = s.views[i:]
		}
	}
}

// Latest returns the most recent comparison view.
func (s *MemoryStore) Latest() (weather.ComparisonView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.views) == 0 {
		return weather.ComparisonView{}, ErrNotFound
	}
	return s.views[len(s.views)-1], nil
}

// Range returns all views with timestamps between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]weather.ComparisonView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.views) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.ComparisonView
	for _, v := range s.views {
		if !v.Timestamp.Before(from) && !v.Timestamp.After(to) {
			result = append(result, v)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

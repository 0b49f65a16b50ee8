package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-epaper/internal/dashboard"
)

var (
	// ErrNotFound is returned when no frame is available for a variant.
	ErrNotFound = errors.New("no frames for variant")
)

// FrameHistory holds the frames rendered for one variant, oldest first.
type FrameHistory struct {
	Frames []dashboard.Frame
}

// MemoryStore is a concurrency-safe in-memory frame store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: variant name
	data map[string]*FrameHistory

	maxHistory int           // max frames per variant
	maxAge     time.Duration // optional max age of a frame

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*FrameHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveFrame appends a frame for its variant and enforces retention. The
// newest frame is always kept.
func (s *MemoryStore) SaveFrame(f dashboard.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[f.Variant]
	if !ok {
		history = &FrameHistory{}
		s.data[f.Variant] = history
	}

	history.Frames = append(history.Frames, f)

	if s.maxHistory > 0 && len(history.Frames) > s.maxHistory {
		over := len(history.Frames) - s.maxHistory
		history.Frames = history.Frames[over:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Frames)-1; i++ {
			if !history.Frames[i].RenderedAt.Before(cutoff) {
				break
			}
		}
		history.Frames = history.Frames[i:]
	}
}

// GetLatest returns the most recent frame for a variant.
func (s *MemoryStore) GetLatest(variant string) (dashboard.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[variant]
	if !ok || len(history.Frames) == 0 {
		return dashboard.Frame{}, ErrNotFound
	}
	return history.Frames[len(history.Frames)-1], nil
}

// GetRange returns the frames for a variant rendered between from and to
// (inclusive).
func (s *MemoryStore) GetRange(variant string, from, to time.Time) ([]dashboard.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[variant]
	if !ok || len(history.Frames) == 0 {
		return nil, ErrNotFound
	}

	var result []dashboard.Frame
	for _, f := range history.Frames {
		if !f.RenderedAt.Before(from) && !f.RenderedAt.After(to) {
			result = append(result, f)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

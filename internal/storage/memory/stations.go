package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"station-reports/internal/storage"
)

func (s *Storage) CreateStation(_ context.Context, st storage.Station) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.stations {
		if st.Username != "" && strings.EqualFold(existing.Username, st.Username) {
			return 0, fmt.Errorf("storage.memory.CreateStation: %w", storage.ErrStationExists)
		}
	}

	if st.ID == 0 {
		for id := range s.stations {
			if id > st.ID {
				st.ID = id
			}
		}
		st.ID++
	}
	s.stations[st.ID] = st

	return st.ID, nil
}

func (s *Storage) ListStations(_ context.Context) ([]storage.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Station, 0, len(s.stations))
	for _, st := range s.stations {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})

	return out, nil
}

func (s *Storage) GetStation(_ context.Context, id int64) (*storage.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &st, nil
}

func (s *Storage) ToggleNightShift(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok {
		return false, storage.ErrNotFound
	}
	st.HasNightShift = !st.HasNightShift
	s.stations[id] = st

	return st.HasNightShift, nil
}

func (s *Storage) TouchLastSeen(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok {
		return storage.ErrNotFound
	}
	st.LastSeenAt = &at
	st.LastSeenNaive = false
	s.stations[id] = st

	return nil
}

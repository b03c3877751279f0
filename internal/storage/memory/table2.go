package memory

import (
	"context"
	"sort"
	"time"

	"station-reports/internal/storage"
)

func copyTable2(r storage.Table2Record) storage.Table2Record {
	r.Fields = r.Fields.Clone()
	if r.SubmittedAt != nil {
		at := *r.SubmittedAt
		r.SubmittedAt = &at
	}
	return r
}

func (s *Storage) GetTable2(_ context.Context, stationID int64, date time.Time) (*storage.Table2Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.table2[dayKey{stationID, storage.DateOnly(date)}]
	if !ok {
		return nil, storage.ErrNotFound
	}

	rec := copyTable2(row.rec)
	return &rec, nil
}

func (s *Storage) Table2Exists(_ context.Context, stationID int64, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.table2[dayKey{stationID, storage.DateOnly(date)}]
	return ok, nil
}

func (s *Storage) UpsertTable2(_ context.Context, rec storage.Table2Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := dayKey{rec.StationID, storage.DateOnly(rec.Date)}
	rec = copyTable2(rec)
	rec.Date = k.date

	if row, ok := s.table2[k]; ok {
		if rec.SubmittedAt == nil {
			rec.SubmittedAt = row.rec.SubmittedAt
		}
		row.rec = rec
		return nil
	}

	s.seq++
	s.table2[k] = &table2Row{seq: s.seq, rec: rec}

	return nil
}

func (s *Storage) StampTable2Submitted(_ context.Context, stationID int64, date time.Time, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.table2[dayKey{stationID, storage.DateOnly(date)}]
	if !ok {
		return 0, nil
	}

	stamp := at
	row.rec.SubmittedAt = &stamp

	return 1, nil
}

func (s *Storage) DeleteTable2(_ context.Context, stationID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table2, dayKey{stationID, storage.DateOnly(date)})
	return nil
}

func (s *Storage) ListTable2(_ context.Context, filter storage.RecordFilter) ([]storage.Table2Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []*table2Row
	for k, row := range s.table2 {
		if filter.StationID != 0 && k.stationID != filter.StationID {
			continue
		}
		if !filter.Contains(k.date) {
			continue
		}
		if filter.SubmittedOnly && row.rec.SubmittedAt == nil {
			continue
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].rec.Date.Equal(rows[j].rec.Date) {
			return rows[i].rec.Date.Before(rows[j].rec.Date)
		}
		return rows[i].seq < rows[j].seq
	})

	out := make([]storage.Table2Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, copyTable2(row.rec))
	}

	return out, nil
}

func (s *Storage) ListTable2Dates(_ context.Context, stationID int64) ([]storage.DateStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[time.Time]*time.Time)
	for k, row := range s.table2 {
		if k.stationID == stationID {
			latest[k.date] = row.rec.SubmittedAt
		}
	}

	return dateStatuses(latest), nil
}

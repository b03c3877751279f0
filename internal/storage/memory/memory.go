// Package memory - хранилище отчетов в памяти процесса с той же семантикой натуральных
// ключей и upsert, что и MySQL. Используется в тестах сервисов и в локальном окружении.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"station-reports/internal/storage"
)

type shiftKey struct {
	stationID int64
	date      time.Time
	shift     storage.Shift
	block     int
}

type dayKey struct {
	stationID int64
	date      time.Time
}

type shiftRow struct {
	seq int64
	rec storage.ShiftRecord
}

type table2Row struct {
	seq int64
	rec storage.Table2Record
}

type Storage struct {
	mu       sync.RWMutex
	seq      int64
	shifts   map[shiftKey]*shiftRow
	table2   map[dayKey]*table2Row
	stations map[int64]storage.Station
}

func New() *Storage {
	return &Storage{
		shifts:   make(map[shiftKey]*shiftRow),
		table2:   make(map[dayKey]*table2Row),
		stations: make(map[int64]storage.Station),
	}
}

func keyOf(r storage.ShiftRecord) shiftKey {
	block := r.Block
	if block <= 0 {
		block = storage.DefaultBlock
	}
	return shiftKey{stationID: r.StationID, date: storage.DateOnly(r.Date), shift: r.Shift, block: block}
}

func copyRecord(r storage.ShiftRecord) storage.ShiftRecord {
	r.Fields = r.Fields.Clone()
	if r.SubmittedAt != nil {
		at := *r.SubmittedAt
		r.SubmittedAt = &at
	}
	return r
}

func (s *Storage) GetShiftRecords(ctx context.Context, stationID int64, date time.Time) ([]storage.ShiftRecord, error) {
	return s.ListShiftRecords(ctx, storage.RecordFilter{StationID: stationID, From: &date, To: &date})
}

func (s *Storage) ListShiftRecords(_ context.Context, filter storage.RecordFilter) ([]storage.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submitted := make(map[dayKey]bool)
	if filter.SubmittedOnly {
		for k, row := range s.shifts {
			if k.shift == storage.ShiftTotal && row.rec.SubmittedAt != nil {
				submitted[dayKey{k.stationID, k.date}] = true
			}
		}
	}

	var rows []*shiftRow
	for k, row := range s.shifts {
		if filter.StationID != 0 && k.stationID != filter.StationID {
			continue
		}
		if filter.Shift != "" && k.shift != filter.Shift {
			continue
		}
		if !filter.Contains(k.date) {
			continue
		}
		if filter.SubmittedOnly && !submitted[dayKey{k.stationID, k.date}] {
			continue
		}
		rows = append(rows, row)
	}

	sortRows(rows)

	out := make([]storage.ShiftRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, copyRecord(row.rec))
	}

	return out, nil
}

func sortRows(rows []*shiftRow) {
	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].rec.Date, rows[j].rec.Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return rows[i].seq < rows[j].seq
	})
}

func (s *Storage) TotalExists(_ context.Context, stationID int64, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := storage.DateOnly(date)
	for k := range s.shifts {
		if k.stationID == stationID && k.date.Equal(d) && k.shift == storage.ShiftTotal {
			return true, nil
		}
	}

	return false, nil
}

// UpsertShiftRecords заменяет данные записей целиком (последний писатель побеждает).
// Отметка об отправке сохраняется, если новая запись ее не несет.
func (s *Storage) UpsertShiftRecords(_ context.Context, records []storage.ShiftRecord) error {
	const op = "storage.memory.UpsertShiftRecords"

	for _, r := range records {
		if !r.Shift.Valid() {
			return fmt.Errorf("%s: неизвестная смена %q", op, r.Shift)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		k := keyOf(r)
		rec := copyRecord(r)
		rec.Date = k.date
		rec.Block = k.block

		if row, ok := s.shifts[k]; ok {
			if rec.SubmittedAt == nil {
				rec.SubmittedAt = row.rec.SubmittedAt
			}
			row.rec = rec
			continue
		}

		s.seq++
		s.shifts[k] = &shiftRow{seq: s.seq, rec: rec}
	}

	return nil
}

func (s *Storage) StampSubmitted(_ context.Context, stationID int64, date time.Time, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := storage.DateOnly(date)
	var n int64
	for k, row := range s.shifts {
		if k.stationID == stationID && k.date.Equal(d) && k.shift == storage.ShiftTotal {
			stamp := at
			row.rec.SubmittedAt = &stamp
			n++
		}
	}

	return n, nil
}

func (s *Storage) DeleteShiftDate(_ context.Context, stationID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := storage.DateOnly(date)
	for k := range s.shifts {
		if k.stationID == stationID && k.date.Equal(d) {
			delete(s.shifts, k)
		}
	}

	return nil
}

func (s *Storage) ListTotalDates(_ context.Context, stationID int64) ([]storage.DateStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[time.Time]*time.Time)
	for k, row := range s.shifts {
		if k.stationID != stationID || k.shift != storage.ShiftTotal {
			continue
		}
		cur, ok := latest[k.date]
		if !ok || (row.rec.SubmittedAt != nil && (cur == nil || row.rec.SubmittedAt.After(*cur))) {
			latest[k.date] = row.rec.SubmittedAt
		}
	}

	return dateStatuses(latest), nil
}

func dateStatuses(latest map[time.Time]*time.Time) []storage.DateStatus {
	out := make([]storage.DateStatus, 0, len(latest))
	for d, at := range latest {
		out = append(out, storage.DateStatus{Date: d, SubmittedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

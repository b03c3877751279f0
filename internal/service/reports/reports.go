// Package reports - сохранение и отправка суточных отчетов станций и сводные представления
// для центрального аппарата.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"station-reports/internal/clock"
	"station-reports/internal/storage"
)

var ErrInvalidRange = errors.New("invalid date range")

// maxOverviewDays ограничивает сводку отправки одним кварталом.
const maxOverviewDays = 93

type ShiftStore interface {
	GetShiftRecords(ctx context.Context, stationID int64, date time.Time) ([]storage.ShiftRecord, error)
	ListShiftRecords(ctx context.Context, filter storage.RecordFilter) ([]storage.ShiftRecord, error)
	TotalExists(ctx context.Context, stationID int64, date time.Time) (bool, error)
	UpsertShiftRecords(ctx context.Context, records []storage.ShiftRecord) error
	StampSubmitted(ctx context.Context, stationID int64, date time.Time, at time.Time) (int64, error)
	DeleteShiftDate(ctx context.Context, stationID int64, date time.Time) error
	ListTotalDates(ctx context.Context, stationID int64) ([]storage.DateStatus, error)
}

type Table2Store interface {
	GetTable2(ctx context.Context, stationID int64, date time.Time) (*storage.Table2Record, error)
	Table2Exists(ctx context.Context, stationID int64, date time.Time) (bool, error)
	UpsertTable2(ctx context.Context, rec storage.Table2Record) error
	StampTable2Submitted(ctx context.Context, stationID int64, date time.Time, at time.Time) (int64, error)
	DeleteTable2(ctx context.Context, stationID int64, date time.Time) error
	ListTable2(ctx context.Context, filter storage.RecordFilter) ([]storage.Table2Record, error)
	ListTable2Dates(ctx context.Context, stationID int64) ([]storage.DateStatus, error)
}

type StationStore interface {
	ListStations(ctx context.Context) ([]storage.Station, error)
	GetStation(ctx context.Context, id int64) (*storage.Station, error)
	ToggleNightShift(ctx context.Context, id int64) (bool, error)
	CreateStation(ctx context.Context, st storage.Station) (int64, error)
}

type Service struct {
	shifts   ShiftStore
	table2   Table2Store
	stations StationStore
	clock    clock.Clock
}

func NewService(shifts ShiftStore, table2 Table2Store, stations StationStore, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{shifts: shifts, table2: table2, stations: stations, clock: clk}
}

func (s *Service) ToggleNightShift(ctx context.Context, stationID int64) (bool, error) {
	hasNight, err := s.stations.ToggleNightShift(ctx, stationID)
	if err != nil {
		return false, wrap("service.reports.ToggleNightShift", err)
	}
	return hasNight, nil
}

var ErrEmptyUsername = errors.New("empty station username")

// CreateStation регистрирует станцию. Логин обязателен, название можно задать позже.
func (s *Service) CreateStation(ctx context.Context, st storage.Station) (*storage.Station, error) {
	const op = "service.reports.CreateStation"

	st.Username = strings.TrimSpace(st.Username)
	st.StationName = strings.TrimSpace(st.StationName)
	if st.Username == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyUsername)
	}
	st.ID = 0
	st.LastSeenAt = nil

	id, err := s.stations.CreateStation(ctx, st)
	if err != nil {
		return nil, wrap(op, err)
	}
	st.ID = id

	return &st, nil
}

func (s *Service) ListStations(ctx context.Context) ([]storage.Station, error) {
	list, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, wrap("service.reports.ListStations", err)
	}
	return list, nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"station-reports/internal/clock"
	"station-reports/internal/storage"
)

type ShiftReader interface {
	ListShiftRecords(ctx context.Context, filter storage.RecordFilter) ([]storage.ShiftRecord, error)
}

type Table2Reader interface {
	ListTable2(ctx context.Context, filter storage.RecordFilter) ([]storage.Table2Record, error)
}

type StationReader interface {
	ListStations(ctx context.Context) ([]storage.Station, error)
}

type Service struct {
	shifts   ShiftReader
	table2   Table2Reader
	stations StationReader
	clock    clock.Clock
	loc      *time.Location
	window   time.Duration
}

func NewService(shifts ShiftReader, table2 Table2Reader, stations StationReader, clk clock.Clock, loc *time.Location, window time.Duration) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{shifts: shifts, table2: table2, stations: stations, clock: clk, loc: loc, window: window}
}

type Dashboard struct {
	From       *time.Time    `json:"from"`
	To         *time.Time    `json:"to"`
	KPI        KPI           `json:"kpi"`
	TopIncome  Series        `json:"top_income"`
	LastDays   Series        `json:"last_days"`
	Monthly    StackedSeries `json:"monthly"`
	ByStation  StackedSeries `json:"by_station"`
	StackedTop StackedSeries `json:"stacked_top"`
}

// today - календарная дата в зоне сервиса.
func (s *Service) today() time.Time {
	return storage.DateOnly(s.clock.Now().In(s.loc))
}

// Dashboard строит все показатели по отправленным итоговым записям. Границы from/to влияют на KPI и
// разрезы по станциям; ряды по дням и месяцам всегда строятся от сегодняшней даты.
func (s *Service) Dashboard(ctx context.Context, from, to *time.Time) (*Dashboard, error) {
	const op = "service.dashboard.Dashboard"

	today := s.today()
	trendFrom := monthStart(today).AddDate(0, -(TrendMonths - 1), 0)

	var (
		stations []storage.Station
		ranged   []storage.ShiftRecord
		recent   []storage.ShiftRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stations, err = s.stations.ListStations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ranged, err = s.shifts.ListShiftRecords(gctx, storage.RecordFilter{
			From: from, To: to, Shift: storage.ShiftTotal, SubmittedOnly: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.shifts.ListShiftRecords(gctx, storage.RecordFilter{
			From: &trendFrom, To: &today, Shift: storage.ShiftTotal, SubmittedOnly: true,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := storage.NewStationNames(stations)

	return &Dashboard{
		From:       from,
		To:         to,
		KPI:        KPITotals(ranged, from, to),
		TopIncome:  TopStationsByIncome(recent, names, today, TopN),
		LastDays:   LastDaysIncome(recent, today, LastDaysLen),
		Monthly:    MonthlyTrend(recent, today, TrendMonths),
		ByStation:  StationRangeTotals(ranged, names),
		StackedTop: StackedTop(ranged, names, TopN),
	}, nil
}

func (s *Service) Online(ctx context.Context) ([]Presence, error) {
	const op = "service.dashboard.Online"

	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ClassifyOnline(stations, s.clock.Now(), s.loc, s.window), nil
}

// Table2Grid - отправленные таблицы 2 всех станций за дату.
func (s *Service) Table2Grid(ctx context.Context, date time.Time) (*Grid, error) {
	const op = "service.dashboard.Table2Grid"

	var (
		stations []storage.Station
		records  []storage.Table2Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stations, err = s.stations.ListStations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.table2.ListTable2(gctx, storage.RecordFilter{From: &date, To: &date, SubmittedOnly: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grid := RoadGrid(date, records, storage.NewStationNames(stations))
	return &grid, nil
}

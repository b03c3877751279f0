package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"station-reports/internal/service/reconcile"
	"station-reports/internal/service/terminals"
	"station-reports/internal/storage"
)

type SaveTable1Request struct {
	StationID int64
	Date      string
	Block     int
	// IsNew - создание отчета за новую дату; существующий итог за дату не перезаписывается.
	IsNew  bool
	Submit bool

	Day    map[string]any
	Night  map[string]any
	Common map[string]any
	Manual map[string]any
}

type SaveTable1Result struct {
	Date      time.Time      `json:"date"`
	Block     int            `json:"block"`
	Day       storage.Fields `json:"day"`
	Night     storage.Fields `json:"night,omitempty"`
	Total     storage.Fields `json:"total"`
	HasNight  bool           `json:"has_night"`
	Submitted bool           `json:"submitted"`
}

func (s *Service) SaveTable1(ctx context.Context, req SaveTable1Request) (*SaveTable1Result, error) {
	const op = "service.reports.SaveTable1"

	date, err := reconcile.ParseDate(req.Date)
	if err != nil {
		return nil, wrap(op, err)
	}

	block := req.Block
	if block <= 0 {
		block = storage.DefaultBlock
	}

	station, err := s.stations.GetStation(ctx, req.StationID)
	if err != nil {
		return nil, wrap(op, err)
	}

	if req.IsNew {
		exists, err := s.shifts.TotalExists(ctx, req.StationID, date)
		if err != nil {
			return nil, wrap(op, err)
		}
		if exists {
			return nil, fmt.Errorf("%s: отчет за %s уже существует: %w", op, date.Format(reconcile.DateLayout), storage.ErrReportExists)
		}
	}

	res, err := reconcile.Reconcile(reconcile.Input{
		Day:      req.Day,
		Night:    req.Night,
		Common:   req.Common,
		Manual:   req.Manual,
		HasNight: station.HasNightShift,
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	record := func(shift storage.Shift, fields storage.Fields) storage.ShiftRecord {
		return storage.ShiftRecord{StationID: req.StationID, Date: date, Shift: shift, Block: block, Fields: fields}
	}

	records := []storage.ShiftRecord{record(storage.ShiftDay, res.Day)}
	if station.HasNightShift {
		records = append(records, record(storage.ShiftNight, res.Night))
	}
	records = append(records, record(storage.ShiftTotal, res.Total))

	if err := s.shifts.UpsertShiftRecords(ctx, records); err != nil {
		return nil, wrap(op, err)
	}

	if req.Submit {
		if _, err := s.shifts.StampSubmitted(ctx, req.StationID, date, s.clock.Now()); err != nil {
			return nil, wrap(op, err)
		}
	}

	out := &SaveTable1Result{
		Date:      date,
		Block:     block,
		Day:       res.Day,
		Total:     res.Total,
		HasNight:  station.HasNightShift,
		Submitted: req.Submit,
	}
	if station.HasNightShift {
		out.Night = res.Night
	}

	return out, nil
}

// Submit отмечает отправку всех итоговых записей станции за дату. Повторная отправка
// только обновляет время.
func (s *Service) Submit(ctx context.Context, stationID int64, rawDate string) (time.Time, error) {
	const op = "service.reports.Submit"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return time.Time{}, wrap(op, err)
	}

	at := s.clock.Now()
	n, err := s.shifts.StampSubmitted(ctx, stationID, date, at)
	if err != nil {
		return time.Time{}, wrap(op, err)
	}

	if n == 0 {
		// MySQL не считает строку измененной, если время совпало
		exists, err := s.shifts.TotalExists(ctx, stationID, date)
		if err != nil {
			return time.Time{}, wrap(op, err)
		}
		if !exists {
			return time.Time{}, fmt.Errorf("%s: нет итоговых записей за %s: %w", op, rawDate, storage.ErrNotFound)
		}
	}

	return at, nil
}

func (s *Service) DeleteTable1(ctx context.Context, stationID int64, rawDate string) error {
	const op = "service.reports.DeleteTable1"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return wrap(op, err)
	}

	if err := s.shifts.DeleteShiftDate(ctx, stationID, date); err != nil {
		return wrap(op, err)
	}

	return nil
}

func (s *Service) ListTable1(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	dates, err := s.shifts.ListTotalDates(ctx, stationID)
	if err != nil {
		return nil, wrap("service.reports.ListTable1", err)
	}
	return dates, nil
}

type BlockView struct {
	Block       int            `json:"block"`
	Day         storage.Fields `json:"day"`
	Night       storage.Fields `json:"night"`
	Total       storage.Fields `json:"total"`
	SubmittedAt *time.Time     `json:"submitted_at"`
}

type StationDayView struct {
	Date      time.Time               `json:"date"`
	HasNight  bool                    `json:"has_night"`
	Submitted bool                    `json:"submitted"`
	Blocks    []BlockView             `json:"blocks"`
	Combined  terminals.StationShifts `json:"combined"`
}

// StationDay возвращает отчет станции за дату по терминалам и черновую сумму по всем терминалам.
func (s *Service) StationDay(ctx context.Context, stationID int64, rawDate string) (*StationDayView, error) {
	const op = "service.reports.StationDay"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return nil, wrap(op, err)
	}

	station, err := s.stations.GetStation(ctx, stationID)
	if err != nil {
		return nil, wrap(op, err)
	}

	records, err := s.shifts.GetShiftRecords(ctx, stationID, date)
	if err != nil {
		return nil, wrap(op, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: отчет за %s: %w", op, rawDate, storage.ErrNotFound)
	}

	byBlock := lo.GroupBy(records, func(r storage.ShiftRecord) int { return r.Block })
	blocks := lo.Keys(byBlock)
	sort.Ints(blocks)

	view := &StationDayView{Date: date, HasNight: station.HasNightShift}
	for _, b := range blocks {
		bv := BlockView{Block: b}
		for _, r := range byBlock[b] {
			switch r.Shift {
			case storage.ShiftDay:
				bv.Day = reconcile.ApplySubtotalRules(r.Fields)
			case storage.ShiftNight:
				bv.Night = reconcile.ApplySubtotalRules(r.Fields)
			case storage.ShiftTotal:
				bv.Total = reconcile.ApplySubtotalRules(r.Fields)
				bv.SubmittedAt = r.SubmittedAt
				if r.Submitted() {
					view.Submitted = true
				}
			}
		}
		view.Blocks = append(view.Blocks, bv)
	}

	view.Combined = terminals.ByShift(records)

	return view, nil
}

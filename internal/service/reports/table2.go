package reports

import (
	"context"
	"fmt"
	"time"

	"station-reports/internal/constants"
	"station-reports/internal/service/reconcile"
	"station-reports/internal/storage"
)

type SaveTable2Request struct {
	StationID int64
	Date      string
	IsNew     bool
	Submit    bool
	Values    map[string]any
}

func (s *Service) SaveTable2(ctx context.Context, req SaveTable2Request) (*storage.Table2Record, error) {
	const op = "service.reports.SaveTable2"

	date, err := reconcile.ParseDate(req.Date)
	if err != nil {
		return nil, wrap(op, err)
	}

	if req.IsNew {
		exists, err := s.table2.Table2Exists(ctx, req.StationID, date)
		if err != nil {
			return nil, wrap(op, err)
		}
		if exists {
			return nil, fmt.Errorf("%s: таблица 2 за %s уже существует: %w", op, req.Date, storage.ErrReportExists)
		}
	}

	fields, err := reconcile.ParseFields(constants.ReportTable2, req.Values, false)
	if err != nil {
		return nil, wrap(op, err)
	}

	rec := storage.Table2Record{StationID: req.StationID, Date: date, Fields: fields}
	if req.Submit {
		now := s.clock.Now()
		rec.SubmittedAt = &now
	}

	if err := s.table2.UpsertTable2(ctx, rec); err != nil {
		return nil, wrap(op, err)
	}

	return &rec, nil
}

func (s *Service) GetTable2(ctx context.Context, stationID int64, rawDate string) (*storage.Table2Record, error) {
	const op = "service.reports.GetTable2"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return nil, wrap(op, err)
	}

	rec, err := s.table2.GetTable2(ctx, stationID, date)
	if err != nil {
		return nil, wrap(op, err)
	}

	return rec, nil
}

func (s *Service) ListTable2(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	dates, err := s.table2.ListTable2Dates(ctx, stationID)
	if err != nil {
		return nil, wrap("service.reports.ListTable2", err)
	}
	return dates, nil
}

func (s *Service) SubmitTable2(ctx context.Context, stationID int64, rawDate string) (time.Time, error) {
	const op = "service.reports.SubmitTable2"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return time.Time{}, wrap(op, err)
	}

	at := s.clock.Now()
	n, err := s.table2.StampTable2Submitted(ctx, stationID, date, at)
	if err != nil {
		return time.Time{}, wrap(op, err)
	}

	if n == 0 {
		exists, err := s.table2.Table2Exists(ctx, stationID, date)
		if err != nil {
			return time.Time{}, wrap(op, err)
		}
		if !exists {
			return time.Time{}, fmt.Errorf("%s: таблица 2 за %s: %w", op, rawDate, storage.ErrNotFound)
		}
	}

	return at, nil
}

func (s *Service) DeleteTable2(ctx context.Context, stationID int64, rawDate string) error {
	const op = "service.reports.DeleteTable2"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return wrap(op, err)
	}

	if err := s.table2.DeleteTable2(ctx, stationID, date); err != nil {
		return wrap(op, err)
	}

	return nil
}

package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"station-reports/internal/constants"
	"station-reports/internal/service/reconcile"
	"station-reports/internal/service/terminals"
	"station-reports/internal/storage"
)

// StationDayRow - строка сводного отчета за день: смены станции после сложения терминалов.
type StationDayRow struct {
	StationID     int64          `json:"station_id"`
	Name          string         `json:"name"`
	HasNightShift bool           `json:"has_night_shift"`
	Submitted     bool           `json:"submitted"`
	SubmittedAt   *time.Time     `json:"submitted_at"`
	Day           storage.Fields `json:"day"`
	Night         storage.Fields `json:"night"`
	Total         storage.Fields `json:"total"`
}

type AdminDay struct {
	Date   time.Time              `json:"date"`
	Fields []constants.FieldLabel `json:"fields"`
	Rows   []StationDayRow        `json:"rows"`
}

// AdminTable1Day собирает отчет всех станций за дату. Станции без записей попадают в отчет
// с пустыми сменами; записи неизвестной станции получают имя по идентификатору.
func (s *Service) AdminTable1Day(ctx context.Context, rawDate string) (*AdminDay, error) {
	const op = "service.reports.AdminTable1Day"

	date, err := reconcile.ParseDate(rawDate)
	if err != nil {
		return nil, wrap(op, err)
	}

	var (
		stations []storage.Station
		records  []storage.ShiftRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stations, err = s.stations.ListStations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.shifts.ListShiftRecords(gctx, storage.RecordFilter{From: &date, To: &date})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrap(op, err)
	}

	labels, err := constants.Labels(constants.ReportTable1)
	if err != nil {
		return nil, wrap(op, err)
	}

	byStation := lo.GroupBy(records, func(r storage.ShiftRecord) int64 { return r.StationID })

	rows := make([]StationDayRow, 0, len(stations)+len(byStation))
	known := make(map[int64]bool, len(stations))
	for _, st := range stations {
		known[st.ID] = true
		rows = append(rows, dayRow(st, byStation[st.ID]))
	}
	for id, recs := range byStation {
		if known[id] {
			continue
		}
		rows = append(rows, dayRow(storage.Station{ID: id, HasNightShift: true}, recs))
	}

	sortByName(rows, func(r StationDayRow) (string, int64) { return r.Name, r.StationID })

	return &AdminDay{Date: date, Fields: labels, Rows: rows}, nil
}

func dayRow(st storage.Station, records []storage.ShiftRecord) StationDayRow {
	shifts := terminals.ByShift(records)

	row := StationDayRow{
		StationID:     st.ID,
		Name:          st.DisplayName(),
		HasNightShift: st.HasNightShift,
		Day:           shifts.Day,
		Night:         shifts.Night,
		Total:         shifts.Total,
	}

	for _, r := range records {
		if r.Shift != storage.ShiftTotal || !r.Submitted() {
			continue
		}
		row.Submitted = true
		if row.SubmittedAt == nil || r.SubmittedAt.After(*row.SubmittedAt) {
			row.SubmittedAt = r.SubmittedAt
		}
	}

	return row
}

func sortByName[T any](rows []T, key func(T) (string, int64)) {
	sort.SliceStable(rows, func(i, j int) bool {
		ni, idi := key(rows[i])
		nj, idj := key(rows[j])
		li, lj := strings.ToLower(ni), strings.ToLower(nj)
		if li != lj {
			return li < lj
		}
		return idi < idj
	})
}

type StationRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DateOverview struct {
	Date         time.Time    `json:"date"`
	Submitted    []StationRef `json:"submitted"`
	NotSubmitted []StationRef `json:"not_submitted"`
}

// SubmissionOverview - по каждой дате периода: какие станции отправили отчет, какие нет.
func (s *Service) SubmissionOverview(ctx context.Context, rt constants.ReportType, rawFrom, rawTo string) ([]DateOverview, error) {
	const op = "service.reports.SubmissionOverview"

	from, err := reconcile.ParseDate(rawFrom)
	if err != nil {
		return nil, wrap(op, err)
	}
	to, err := reconcile.ParseDate(rawTo)
	if err != nil {
		return nil, wrap(op, err)
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 || days > maxOverviewDays {
		return nil, fmt.Errorf("%s: %s..%s: %w", op, rawFrom, rawTo, ErrInvalidRange)
	}

	var (
		stations  []storage.Station
		submitted = make(map[time.Time]map[int64]bool)
	)

	filter := storage.RecordFilter{From: &from, To: &to, SubmittedOnly: true}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stations, err = s.stations.ListStations(gctx)
		return err
	})
	g.Go(func() error {
		pairs, err := s.submittedPairs(gctx, rt, filter)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			if submitted[p.date] == nil {
				submitted[p.date] = make(map[int64]bool)
			}
			submitted[p.date][p.stationID] = true
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, wrap(op, err)
	}

	refs := lo.Map(stations, func(st storage.Station, _ int) StationRef {
		return StationRef{ID: st.ID, Name: st.DisplayName()}
	})
	sortByName(refs, func(r StationRef) (string, int64) { return r.Name, r.ID })

	out := make([]DateOverview, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		ov := DateOverview{Date: d, Submitted: []StationRef{}, NotSubmitted: []StationRef{}}
		for _, ref := range refs {
			if submitted[d][ref.ID] {
				ov.Submitted = append(ov.Submitted, ref)
			} else {
				ov.NotSubmitted = append(ov.NotSubmitted, ref)
			}
		}
		out = append(out, ov)
	}

	return out, nil
}

type stationDate struct {
	stationID int64
	date      time.Time
}

func (s *Service) submittedPairs(ctx context.Context, rt constants.ReportType, filter storage.RecordFilter) ([]stationDate, error) {
	switch rt {
	case constants.ReportTable1:
		filter.Shift = storage.ShiftTotal
		records, err := s.shifts.ListShiftRecords(ctx, filter)
		if err != nil {
			return nil, err
		}
		return lo.Map(records, func(r storage.ShiftRecord, _ int) stationDate {
			return stationDate{stationID: r.StationID, date: storage.DateOnly(r.Date)}
		}), nil
	case constants.ReportTable2:
		records, err := s.table2.ListTable2(ctx, filter)
		if err != nil {
			return nil, err
		}
		return lo.Map(records, func(r storage.Table2Record, _ int) stationDate {
			return stationDate{stationID: r.StationID, date: storage.DateOnly(r.Date)}
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownReportType, rt)
	}
}

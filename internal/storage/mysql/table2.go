package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"station-reports/internal/storage"
)

func scanTable2(scan func(dest ...interface{}) error) (storage.Table2Record, error) {
	var (
		rec       storage.Table2Record
		data      []byte
		submitted sql.NullTime
	)

	if err := scan(&rec.StationID, &rec.Date, &data, &submitted); err != nil {
		return rec, err
	}

	rec.SubmittedAt = timePtr(submitted)
	rec.Fields = storage.Fields{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec.Fields); err != nil {
			return rec, fmt.Errorf("data: %w", err)
		}
	}

	return rec, nil
}

func (s *Storage) GetTable2(ctx context.Context, stationID int64, date time.Time) (*storage.Table2Record, error) {
	const op = "storage.mysql.GetTable2"

	stmt := `SELECT station_id, date, data, submitted_at FROM station_daily_table2 WHERE station_id = ? AND date = ?`

	rec, err := scanTable2(s.db.QueryRowContext(ctx, stmt, stationID, date.Format(dateLayout)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rec, nil
}

func (s *Storage) Table2Exists(ctx context.Context, stationID int64, date time.Time) (bool, error) {
	const op = "storage.mysql.Table2Exists"

	stmt := `SELECT EXISTS (SELECT 1 FROM station_daily_table2 WHERE station_id = ? AND date = ?)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, stmt, stationID, date.Format(dateLayout)).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) UpsertTable2(ctx context.Context, rec storage.Table2Record) error {
	const op = "storage.mysql.UpsertTable2"

	data, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("%s: сериализация data: %w", op, err)
	}

	stmt := `INSERT INTO station_daily_table2 (station_id, date, data, submitted_at) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			data = VALUES(data),
			submitted_at = COALESCE(VALUES(submitted_at), submitted_at)`

	_, err = s.db.ExecContext(ctx, stmt, rec.StationID, rec.Date.Format(dateLayout), data, nullTime(rec.SubmittedAt))
	if err != nil {
		return mapWriteErr(op, err)
	}

	return nil
}

func (s *Storage) StampTable2Submitted(ctx context.Context, stationID int64, date time.Time, at time.Time) (int64, error) {
	const op = "storage.mysql.StampTable2Submitted"

	stmt := `UPDATE station_daily_table2 SET submitted_at = ? WHERE station_id = ? AND date = ?`

	res, err := s.db.ExecContext(ctx, stmt, at.UTC(), stationID, date.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.RowsAffected()
}

func (s *Storage) DeleteTable2(ctx context.Context, stationID int64, date time.Time) error {
	const op = "storage.mysql.DeleteTable2"

	stmt := `DELETE FROM station_daily_table2 WHERE station_id = ? AND date = ?`

	if _, err := s.db.ExecContext(ctx, stmt, stationID, date.Format(dateLayout)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) ListTable2(ctx context.Context, filter storage.RecordFilter) ([]storage.Table2Record, error) {
	const op = "storage.mysql.ListTable2"

	var (
		where []string
		args  []interface{}
	)

	if filter.From != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		where = append(where, "date <= ?")
		args = append(args, filter.To.Format(dateLayout))
	}
	if filter.StationID != 0 {
		where = append(where, "station_id = ?")
		args = append(args, filter.StationID)
	}
	if filter.SubmittedOnly {
		where = append(where, "submitted_at IS NOT NULL")
	}

	stmt := `SELECT station_id, date, data, submitted_at FROM station_daily_table2`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []storage.Table2Record
	for rows.Next() {
		rec, err := scanTable2(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		out = append(out, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return out, nil
}

func (s *Storage) ListTable2Dates(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	const op = "storage.mysql.ListTable2Dates"

	stmt := `SELECT date, submitted_at FROM station_daily_table2 WHERE station_id = ? ORDER BY date DESC`

	return s.listDates(ctx, op, stmt, stationID)
}

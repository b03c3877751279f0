package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"station-reports/internal/storage"
)

const selectShift = `SELECT t.station_id, t.date, t.shift, t.block, t.data, t.submitted_at FROM station_daily_table1 t`

func (s *Storage) GetShiftRecords(ctx context.Context, stationID int64, date time.Time) ([]storage.ShiftRecord, error) {
	return s.ListShiftRecords(ctx, storage.RecordFilter{StationID: stationID, From: &date, To: &date})
}

func (s *Storage) ListShiftRecords(ctx context.Context, filter storage.RecordFilter) ([]storage.ShiftRecord, error) {
	const op = "storage.mysql.ListShiftRecords"

	var (
		where []string
		args  []interface{}
	)

	if filter.From != nil {
		where = append(where, "t.date >= ?")
		args = append(args, filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		where = append(where, "t.date <= ?")
		args = append(args, filter.To.Format(dateLayout))
	}
	if filter.StationID != 0 {
		where = append(where, "t.station_id = ?")
		args = append(args, filter.StationID)
	}
	if filter.Shift != "" {
		where = append(where, "t.shift = ?")
		args = append(args, string(filter.Shift))
	}
	if filter.SubmittedOnly {
		// набор записей станции за дату виден целиком, если отправлена хотя бы одна итоговая запись
		where = append(where, `EXISTS (SELECT 1 FROM station_daily_table1 s
			WHERE s.station_id = t.station_id AND s.date = t.date AND s.shift = 'total' AND s.submitted_at IS NOT NULL)`)
	}

	stmt := selectShift
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY t.date, t.id"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения записей смен: %w", op, err)
	}
	defer rows.Close()

	var records []storage.ShiftRecord
	for rows.Next() {
		var (
			rec       storage.ShiftRecord
			shift     string
			data      []byte
			submitted sql.NullTime
		)

		if err := rows.Scan(&rec.StationID, &rec.Date, &shift, &rec.Block, &data, &submitted); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		rec.Shift = storage.Shift(shift)
		rec.SubmittedAt = timePtr(submitted)
		rec.Fields = storage.Fields{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &rec.Fields); err != nil {
				return nil, fmt.Errorf("%s: ошибка разбора data станции %d за %s: %w", op, rec.StationID, rec.Date.Format(dateLayout), err)
			}
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return records, nil
}

func (s *Storage) TotalExists(ctx context.Context, stationID int64, date time.Time) (bool, error) {
	const op = "storage.mysql.TotalExists"

	stmt := `SELECT EXISTS (SELECT 1 FROM station_daily_table1 WHERE station_id = ? AND date = ? AND shift = 'total')`

	var exists bool
	if err := s.db.QueryRowContext(ctx, stmt, stationID, date.Format(dateLayout)).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// UpsertShiftRecords пишет записи одной транзакцией; совпадение по натуральному ключу заменяет data
// целиком. Отметка об отправке остается прежней, если в новой записи ее нет.
func (s *Storage) UpsertShiftRecords(ctx context.Context, records []storage.ShiftRecord) error {
	const op = "storage.mysql.UpsertShiftRecords"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: старт транзакции: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO station_daily_table1 (station_id, date, shift, block, data, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			data = VALUES(data),
			submitted_at = COALESCE(VALUES(submitted_at), submitted_at)
	`)
	if err != nil {
		return fmt.Errorf("%s: подготовка запроса: %w", op, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if !rec.Shift.Valid() {
			return fmt.Errorf("%s: неизвестная смена %q", op, rec.Shift)
		}

		block := rec.Block
		if block <= 0 {
			block = storage.DefaultBlock
		}

		data, err := json.Marshal(rec.Fields)
		if err != nil {
			return fmt.Errorf("%s: сериализация data: %w", op, err)
		}

		_, err = stmt.ExecContext(ctx, rec.StationID, rec.Date.Format(dateLayout), string(rec.Shift), block, data, nullTime(rec.SubmittedAt))
		if err != nil {
			return mapWriteErr(op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return nil
}

// StampSubmitted отмечает отправку всех итоговых записей станции за дату одним запросом.
func (s *Storage) StampSubmitted(ctx context.Context, stationID int64, date time.Time, at time.Time) (int64, error) {
	const op = "storage.mysql.StampSubmitted"

	stmt := `UPDATE station_daily_table1 SET submitted_at = ? WHERE station_id = ? AND date = ? AND shift = 'total'`

	res, err := s.db.ExecContext(ctx, stmt, at.UTC(), stationID, date.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка отметки отправки: %w", op, err)
	}

	return res.RowsAffected()
}

func (s *Storage) DeleteShiftDate(ctx context.Context, stationID int64, date time.Time) error {
	const op = "storage.mysql.DeleteShiftDate"

	stmt := `DELETE FROM station_daily_table1 WHERE station_id = ? AND date = ?`

	if _, err := s.db.ExecContext(ctx, stmt, stationID, date.Format(dateLayout)); err != nil {
		return fmt.Errorf("%s: ошибка удаления отчета: %w", op, err)
	}

	return nil
}

func (s *Storage) ListTotalDates(ctx context.Context, stationID int64) ([]storage.DateStatus, error) {
	const op = "storage.mysql.ListTotalDates"

	stmt := `SELECT date, MAX(submitted_at) FROM station_daily_table1
		WHERE station_id = ? AND shift = 'total'
		GROUP BY date ORDER BY date DESC`

	return s.listDates(ctx, op, stmt, stationID)
}

func (s *Storage) listDates(ctx context.Context, op, stmt string, args ...interface{}) ([]storage.DateStatus, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []storage.DateStatus
	for rows.Next() {
		var (
			ds        storage.DateStatus
			submitted sql.NullTime
		)
		if err := rows.Scan(&ds.Date, &submitted); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		ds.SubmittedAt = timePtr(submitted)
		out = append(out, ds)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return out, nil
}

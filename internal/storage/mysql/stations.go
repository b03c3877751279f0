package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"station-reports/internal/storage"
)

const naiveLayout = "2006-01-02 15:04:05"

func (s *Storage) CreateStation(ctx context.Context, st storage.Station) (int64, error) {
	const op = "storage.mysql.CreateStation"

	stmt := `INSERT INTO station_profiles (username, station_name, has_night_shift) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, st.Username, st.StationName, st.HasNightShift)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return 0, fmt.Errorf("%s: логин %q занят: %w", op, st.Username, storage.ErrStationExists)
		}
		return 0, fmt.Errorf("%s: ошибка сохранения станции: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func scanStation(scan func(dest ...interface{}) error) (storage.Station, error) {
	var (
		st       storage.Station
		lastSeen sql.NullTime
	)

	if err := scan(&st.ID, &st.Username, &st.StationName, &st.HasNightShift, &lastSeen); err != nil {
		return st, err
	}

	st.LastSeenAt = timePtr(lastSeen)
	st.LastSeenNaive = lastSeen.Valid

	return st, nil
}

func (s *Storage) ListStations(ctx context.Context) ([]storage.Station, error) {
	const op = "storage.mysql.ListStations"

	stmt := `SELECT id, username, station_name, has_night_shift, last_seen_at FROM station_profiles ORDER BY username`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения станций: %w", op, err)
	}
	defer rows.Close()

	var stations []storage.Station
	for rows.Next() {
		st, err := scanStation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		stations = append(stations, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return stations, nil
}

func (s *Storage) GetStation(ctx context.Context, id int64) (*storage.Station, error) {
	const op = "storage.mysql.GetStation"

	stmt := `SELECT id, username, station_name, has_night_shift, last_seen_at FROM station_profiles WHERE id = ?`

	st, err := scanStation(s.db.QueryRowContext(ctx, stmt, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: станция %d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &st, nil
}

func (s *Storage) ToggleNightShift(ctx context.Context, id int64) (bool, error) {
	const op = "storage.mysql.ToggleNightShift"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: старт транзакции: %w", op, err)
	}
	defer tx.Rollback()

	var hasNight bool
	err = tx.QueryRowContext(ctx, `SELECT has_night_shift FROM station_profiles WHERE id = ? FOR UPDATE`, id).Scan(&hasNight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: станция %d: %w", op, id, storage.ErrNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	hasNight = !hasNight
	if _, err = tx.ExecContext(ctx, `UPDATE station_profiles SET has_night_shift = ? WHERE id = ?`, hasNight, id); err != nil {
		return false, fmt.Errorf("%s: ошибка обновления статуса ночной смены: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return hasNight, nil
}

// TouchLastSeen пишет время визита как настенное время в зоне хранилища, без пояса.
func (s *Storage) TouchLastSeen(ctx context.Context, id int64, at time.Time) error {
	const op = "storage.mysql.TouchLastSeen"

	stmt := `UPDATE station_profiles SET last_seen_at = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, stmt, at.In(s.loc).Format(naiveLayout), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

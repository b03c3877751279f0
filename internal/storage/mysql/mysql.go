package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"station-reports/internal/config"
	"station-reports/internal/storage"
)

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
)

const dateLayout = "2006-01-02"

type Storage struct {
	db *sql.DB
	// loc - зона, в которой пишется время последнего визита станции (DATETIME без пояса).
	loc *time.Location
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, loc: loc}, nil
}

// NewWithDB оборачивает уже открытое соединение.
func NewWithDB(db *sql.DB, loc *time.Location) *Storage {
	if loc == nil {
		loc = time.UTC
	}
	return &Storage{db: db, loc: loc}
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.mysql.Ping"

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func mapWriteErr(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDuplicateEntry:
			return fmt.Errorf("%s: %w", op, storage.ErrReportExists)
		case errNoReferencedRow:
			return fmt.Errorf("%s: станция не найдена: %w", op, storage.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

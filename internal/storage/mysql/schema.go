package mysql

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS station_profiles (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		station_name VARCHAR(255) NOT NULL DEFAULT '',
		has_night_shift TINYINT(1) NOT NULL DEFAULT 1,
		last_seen_at DATETIME NULL,
		UNIQUE KEY uq_station_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS station_daily_table1 (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		station_id BIGINT NOT NULL,
		date DATE NOT NULL,
		shift VARCHAR(10) NOT NULL,
		block INT NOT NULL DEFAULT 1,
		data JSON NOT NULL,
		submitted_at DATETIME NULL,
		UNIQUE KEY uq_table1_key (station_id, date, shift, block),
		KEY idx_table1_date_shift (date, shift),
		CONSTRAINT fk_table1_station FOREIGN KEY (station_id) REFERENCES station_profiles (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS station_daily_table2 (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		station_id BIGINT NOT NULL,
		date DATE NOT NULL,
		data JSON NOT NULL,
		submitted_at DATETIME NULL,
		UNIQUE KEY uq_table2_key (station_id, date),
		CONSTRAINT fk_table2_station FOREIGN KEY (station_id) REFERENCES station_profiles (id) ON DELETE CASCADE
	)`,
}

// EnsureSchema создает таблицы отчетов, если их еще нет.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.mysql.EnsureSchema"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

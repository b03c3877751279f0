package storage

import (
	"errors"
	"time"
)

var (
	ErrReportExists = errors.New("report already exists")
	ErrNotFound     = errors.New("not found")
)

type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
	ShiftTotal Shift = "total"
)

func (s Shift) Valid() bool {
	return s == ShiftDay || s == ShiftNight || s == ShiftTotal
}

const DefaultBlock = 1

// ShiftRecord - данные одной смены одного терминала станции за дату.
// Натуральный ключ: (StationID, Date, Shift, Block).
type ShiftRecord struct {
	StationID   int64      `json:"station_id"`
	Date        time.Time  `json:"date"`
	Shift       Shift      `json:"shift"`
	Block       int        `json:"block"`
	Fields      Fields     `json:"data"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func (r ShiftRecord) Submitted() bool { return r.SubmittedAt != nil }

// Table2Record - расширенный суточный отчет станции, одна запись на (станция, дата).
type Table2Record struct {
	StationID   int64      `json:"station_id"`
	Date        time.Time  `json:"date"`
	Fields      Fields     `json:"data"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func (r Table2Record) Submitted() bool { return r.SubmittedAt != nil }

type RecordFilter struct {
	From      *time.Time
	To        *time.Time
	StationID int64
	Shift     Shift
	// SubmittedOnly оставляет пары (станция, дата), у которых хотя бы одна итоговая запись отправлена.
	SubmittedOnly bool
}

// Contains проверяет попадание даты в [From, To]; пустая граница не ограничивает.
func (f RecordFilter) Contains(d time.Time) bool {
	day := DateOnly(d)
	if f.From != nil && day.Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && day.After(DateOnly(*f.To)) {
		return false
	}
	return true
}

// DateOnly отбрасывает время суток, сохраняя календарную дату.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type DateStatus struct {
	Date        time.Time  `json:"date"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

// Package dashboard - сводные показатели по станциям и периодам: KPI, рейтинги, ряды по дням и
// месяцам, статус онлайн и сетка таблицы 2 по дороге. Функции не меняют записи.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

const (
	TopN        = 5
	LastDaysLen = 10
	TrendMonths = 6
)

const (
	dayLabel   = "02.01"
	monthLabel = "01.2006"
)

type KPI struct {
	PodVygr int64 `json:"pod_vygr"`
	Vygr    int64 `json:"vygr"`
	PodPogr int64 `json:"pod_pogr"`
	Pogr    int64 `json:"pogr"`
}

func familySum(fields storage.Fields, family constants.MetricFamily) int64 {
	var sum int64
	for name, v := range fields {
		if v.IsText || !family.Matches(name) {
			continue
		}
		sum += v.Num
	}
	return sum
}

// KPITotals суммирует четыре семейства по всем записям периода. Пустая граница периода не ограничивает.
func KPITotals(records []storage.ShiftRecord, from, to *time.Time) KPI {
	window := storage.RecordFilter{From: from, To: to}

	var kpi KPI
	for _, r := range records {
		if !window.Contains(r.Date) {
			continue
		}
		kpi.PodVygr += familySum(r.Fields, constants.FamilyPodVygr)
		kpi.Vygr += familySum(r.Fields, constants.FamilyVygr)
		kpi.PodPogr += familySum(r.Fields, constants.FamilyPodPogr)
		kpi.Pogr += familySum(r.Fields, constants.FamilyPogr)
	}

	return kpi
}

type stationTotal struct {
	id   int64
	a, b int64
}

// byStation суммирует значения по станциям в порядке первого появления станции во входных данных.
func byStation(records []storage.ShiftRecord, value func(storage.Fields) (int64, int64)) []*stationTotal {
	var order []*stationTotal
	idx := make(map[int64]*stationTotal)

	for _, r := range records {
		t, ok := idx[r.StationID]
		if !ok {
			t = &stationTotal{id: r.StationID}
			idx[r.StationID] = t
			order = append(order, t)
		}
		a, b := value(r.Fields)
		t.a += a
		t.b += b
	}

	return order
}

func income(f storage.Fields) (int64, int64) { return f.Int(constants.FieldIncome), 0 }

func vygrPogr(f storage.Fields) (int64, int64) {
	return familySum(f, constants.FamilyVygr), familySum(f, constants.FamilyPogr)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TopStationsByIncome - первые n станций по доходу с начала месяца по today.
// При равном доходе сохраняется порядок первого появления станции.
func TopStationsByIncome(records []storage.ShiftRecord, names storage.StationNames, today time.Time, n int) Series {
	today = storage.DateOnly(today)
	from := monthStart(today)
	window := storage.RecordFilter{From: &from, To: &today}

	inMonth := lo.Filter(records, func(r storage.ShiftRecord, _ int) bool { return window.Contains(r.Date) })

	totals := byStation(inMonth, income)
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].a > totals[j].a })
	if len(totals) > n {
		totals = totals[:n]
	}

	out := newSeries(len(totals))
	for _, t := range totals {
		out.Labels = append(out.Labels, names.Name(t.id))
		out.Values = append(out.Values, t.a)
	}

	return out
}

// LastDaysIncome - доход всех станций по дням за days дней по today включительно, без пропусков.
func LastDaysIncome(records []storage.ShiftRecord, today time.Time, days int) Series {
	today = storage.DateOnly(today)

	perDay := make(map[time.Time]int64)
	for _, r := range records {
		perDay[storage.DateOnly(r.Date)] += r.Fields.Int(constants.FieldIncome)
	}

	out := newSeries(days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		out.Labels = append(out.Labels, d.Format(dayLabel))
		out.Values = append(out.Values, perDay[d])
	}

	return out
}

// MonthlyTrend - выгрузка и погрузка по месяцам за months последних месяцев, включая текущий.
func MonthlyTrend(records []storage.ShiftRecord, today time.Time, months int) StackedSeries {
	current := monthStart(today)

	type bucket struct{ a, b int64 }
	perMonth := make(map[time.Time]*bucket)
	for i := 0; i < months; i++ {
		perMonth[current.AddDate(0, -i, 0)] = &bucket{}
	}

	for _, r := range records {
		b, ok := perMonth[monthStart(r.Date)]
		if !ok {
			continue
		}
		vygr, pogr := vygrPogr(r.Fields)
		b.a += vygr
		b.b += pogr
	}

	out := newStacked(months)
	for i := months - 1; i >= 0; i-- {
		m := current.AddDate(0, -i, 0)
		out.add(m.Format(monthLabel), perMonth[m].a, perMonth[m].b)
	}

	return out
}

// StationRangeTotals - выгрузка и погрузка по станциям, станции по имени без учета регистра.
func StationRangeTotals(records []storage.ShiftRecord, names storage.StationNames) StackedSeries {
	totals := byStation(records, vygrPogr)
	sort.SliceStable(totals, func(i, j int) bool {
		return strings.ToLower(names.Name(totals[i].id)) < strings.ToLower(names.Name(totals[j].id))
	})

	out := newStacked(len(totals))
	for _, t := range totals {
		out.add(names.Name(t.id), t.a, t.b)
	}

	return out
}

// StackedTop - первые n станций по сумме выгрузки и погрузки; составляющие сохраняются раздельно.
func StackedTop(records []storage.ShiftRecord, names storage.StationNames, n int) StackedSeries {
	totals := byStation(records, vygrPogr)
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].a+totals[i].b > totals[j].a+totals[j].b })
	if len(totals) > n {
		totals = totals[:n]
	}

	out := newStacked(len(totals))
	for _, t := range totals {
		out.add(names.Name(t.id), t.a, t.b)
	}

	return out
}

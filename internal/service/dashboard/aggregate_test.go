package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func rec(stationID int64, date time.Time, fields storage.Fields) storage.ShiftRecord {
	return storage.ShiftRecord{StationID: stationID, Date: date, Shift: storage.ShiftTotal, Block: 1, Fields: fields}
}

func incomeRec(stationID int64, date time.Time, income int64) storage.ShiftRecord {
	return rec(stationID, date, storage.Fields{constants.FieldIncome: storage.Int(income)})
}

var testNames = storage.StationNames{1: "Bukhara", 2: "andijan", 3: "Chukursay", 4: "Denau", 5: "Ertepa", 6: "Farhod"}

func TestKPITotals_PrefixFamilies(t *testing.T) {
	records := []storage.ShiftRecord{
		rec(1, d(2024, 3, 1), storage.Fields{
			"vygr_ft":       storage.Int(2),
			"pod_vygr_ft":   storage.Int(5),
			"pogr_kr":       storage.Int(3),
			"pod_pogr_cont": storage.Int(7),
			"uborka":        storage.Int(100),
			"vygr_note":     storage.Text("x"),
		}),
		rec(2, d(2024, 3, 2), storage.Fields{"vygr_ft": storage.Int(10)}),
		rec(3, d(2024, 4, 1), storage.Fields{"vygr_ft": storage.Int(1000)}),
	}

	from, to := d(2024, 3, 1), d(2024, 3, 31)
	kpi := KPITotals(records, &from, &to)

	assert.Equal(t, KPI{PodVygr: 5, Vygr: 12, PodPogr: 7, Pogr: 3}, kpi)

	// открытые границы
	all := KPITotals(records, nil, nil)
	assert.Equal(t, int64(1012), all.Vygr)
}

func TestTopStationsByIncome_StableTies(t *testing.T) {
	today := d(2024, 3, 20)
	records := []storage.ShiftRecord{
		incomeRec(3, d(2024, 3, 1), 50),
		incomeRec(1, d(2024, 3, 2), 50),
		incomeRec(2, d(2024, 3, 3), 70),
		incomeRec(4, d(2024, 3, 4), 10),
		incomeRec(5, d(2024, 3, 5), 50),
		incomeRec(6, d(2024, 3, 6), 5),
		incomeRec(6, d(2024, 2, 28), 1000), // прошлый месяц
		incomeRec(6, d(2024, 3, 21), 1000), // после today
	}

	top := TopStationsByIncome(records, testNames, today, TopN)

	assert.Equal(t, []string{"andijan", "Chukursay", "Bukhara", "Ertepa", "Denau"}, top.Labels)
	assert.Equal(t, []int64{70, 50, 50, 50, 10}, top.Values)
}

func TestTopStationsByIncome_PermutationKeepsOrder(t *testing.T) {
	today := d(2024, 3, 20)
	a := []storage.ShiftRecord{
		incomeRec(1, d(2024, 3, 1), 30),
		incomeRec(2, d(2024, 3, 1), 30),
		incomeRec(1, d(2024, 3, 2), 10),
		incomeRec(2, d(2024, 3, 2), 10),
	}
	// переставлены записи одной станции, порядок первого появления станций тот же
	b := []storage.ShiftRecord{a[2], a[1], a[0], a[3]}

	assert.Equal(t, TopStationsByIncome(a, testNames, today, TopN), TopStationsByIncome(b, testNames, today, TopN))
}

func TestLastDaysIncome_ZeroFill(t *testing.T) {
	today := d(2024, 3, 5)

	empty := LastDaysIncome(nil, today, LastDaysLen)
	require.Len(t, empty.Labels, LastDaysLen)
	require.Len(t, empty.Values, LastDaysLen)
	assert.Equal(t, "25.02", empty.Labels[0])
	assert.Equal(t, "05.03", empty.Labels[9])
	for _, v := range empty.Values {
		assert.Zero(t, v)
	}

	series := LastDaysIncome([]storage.ShiftRecord{
		incomeRec(1, d(2024, 3, 5), 10),
		incomeRec(2, d(2024, 3, 5), 5),
		incomeRec(1, d(2024, 2, 26), 7),
		incomeRec(1, d(2024, 2, 1), 99),
	}, today, LastDaysLen)

	assert.Equal(t, []int64{0, 7, 0, 0, 0, 0, 0, 0, 0, 15}, series.Values)
}

func TestMonthlyTrend_ZeroFill(t *testing.T) {
	today := d(2024, 2, 15)

	empty := MonthlyTrend(nil, today, TrendMonths)
	assert.Equal(t, []string{"09.2023", "10.2023", "11.2023", "12.2023", "01.2024", "02.2024"}, empty.Labels)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0}, empty.SeriesA)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0}, empty.SeriesB)

	trend := MonthlyTrend([]storage.ShiftRecord{
		rec(1, d(2023, 12, 31), storage.Fields{"vygr_ft": storage.Int(4), "pod_vygr_ft": storage.Int(100)}),
		rec(2, d(2024, 2, 1), storage.Fields{"pogr_kr": storage.Int(6)}),
		rec(2, d(2023, 8, 1), storage.Fields{"pogr_kr": storage.Int(1000)}),
	}, today, TrendMonths)

	assert.Equal(t, []int64{0, 0, 0, 4, 0, 0}, trend.SeriesA)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 6}, trend.SeriesB)
}

func TestStationRangeTotals_SortedByName(t *testing.T) {
	records := []storage.ShiftRecord{
		rec(3, d(2024, 3, 1), storage.Fields{"vygr_ft": storage.Int(1)}),
		rec(1, d(2024, 3, 1), storage.Fields{"pogr_ft": storage.Int(2)}),
		rec(2, d(2024, 3, 1), storage.Fields{"vygr_kr": storage.Int(3)}),
		rec(1, d(2024, 3, 2), storage.Fields{"vygr_ft": storage.Int(4)}),
		rec(42, d(2024, 3, 2), storage.Fields{"vygr_ft": storage.Int(5)}),
	}

	out := StationRangeTotals(records, testNames)

	assert.Equal(t, []string{"#42", "andijan", "Bukhara", "Chukursay"}, out.Labels)
	assert.Equal(t, []int64{5, 3, 4, 1}, out.SeriesA)
	assert.Equal(t, []int64{0, 0, 2, 0}, out.SeriesB)
}

func TestStackedTop_KeepsSegments(t *testing.T) {
	records := []storage.ShiftRecord{
		rec(1, d(2024, 3, 1), storage.Fields{"vygr_ft": storage.Int(1), "pogr_ft": storage.Int(9)}),
		rec(2, d(2024, 3, 1), storage.Fields{"vygr_ft": storage.Int(6), "pogr_ft": storage.Int(4)}),
		rec(3, d(2024, 3, 1), storage.Fields{"vygr_ft": storage.Int(20)}),
		rec(4, d(2024, 3, 1), storage.Fields{"pogr_ft": storage.Int(1)}),
		rec(5, d(2024, 3, 1), storage.Fields{"pogr_ft": storage.Int(2)}),
		rec(6, d(2024, 3, 1), storage.Fields{"pogr_ft": storage.Int(3)}),
	}

	out := StackedTop(records, testNames, TopN)

	assert.Equal(t, []string{"Chukursay", "Bukhara", "andijan", "Farhod", "Ertepa"}, out.Labels)
	assert.Equal(t, []int64{20, 1, 6, 0, 0}, out.SeriesA)
	assert.Equal(t, []int64{0, 9, 4, 3, 2}, out.SeriesB)

	// перестановка записей станций с разными суммами не меняет результат
	swapped := []storage.ShiftRecord{records[5], records[0], records[3], records[1], records[4], records[2]}
	assert.Equal(t, out, StackedTop(swapped, testNames, TopN))
}

func TestClassifyOnline_Boundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(delta time.Duration) *time.Time {
		v := now.Add(-delta)
		return &v
	}

	stations := []storage.Station{
		{ID: 1, Username: "b", LastSeenAt: at(89 * time.Second)},
		{ID: 2, Username: "A", LastSeenAt: at(91 * time.Second)},
		{ID: 3, Username: "c"},
		{ID: 4, Username: "d", LastSeenAt: at(90 * time.Second)},
	}

	out := ClassifyOnline(stations, now, time.UTC, DefaultOnlineWindow)

	require.Len(t, out, 4)
	assert.Equal(t, "A", out[0].Name)
	assert.False(t, out[0].Online)
	assert.Equal(t, "b", out[1].Name)
	assert.True(t, out[1].Online)
	assert.Equal(t, "c", out[2].Name)
	assert.False(t, out[2].Online)
	assert.Nil(t, out[2].LastSeenAt)
	assert.False(t, out[3].Online)
}

func TestClassifyOnline_NaiveTimestamp(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, west)

	// настенное 11:59:30 в зоне сервиса, прочитанное из DATETIME как UTC
	naive := time.Date(2024, 3, 1, 11, 59, 30, 0, time.UTC)
	stations := []storage.Station{{ID: 1, Username: "a", LastSeenAt: &naive, LastSeenNaive: true}}

	out := ClassifyOnline(stations, now, west, DefaultOnlineWindow)
	require.Len(t, out, 1)
	assert.True(t, out[0].Online)
	assert.True(t, out[0].LastSeenAt.Equal(now.Add(-30*time.Second)))

	// то же время как UTC - пять часов назад
	stations[0].LastSeenNaive = false
	out = ClassifyOnline(stations, now, west, DefaultOnlineWindow)
	assert.False(t, out[0].Online)
}

func TestRoadGrid(t *testing.T) {
	date := d(2024, 3, 1)
	records := []storage.Table2Record{
		{StationID: 1, Date: date, Fields: storage.Fields{"r01_total": storage.Int(3), "r01_ktk": storage.Int(1)}},
		{StationID: 2, Date: date, Fields: storage.Fields{"r01_total": storage.Int(4), constants.R22GTotal: storage.Int(2)}},
	}

	grid := RoadGrid(date, records, testNames)

	assert.Equal(t, []string{"andijan", "Bukhara", RoadColumn}, grid.Stations)
	require.Len(t, grid.Rows, len(constants.Table2Rows))

	first := grid.Rows[0]
	assert.Equal(t, 1, first.N)
	assert.Equal(t, []GridCell{{Total: 4}, {Total: 3, Ktk: 1}, {Total: 7, Ktk: 1}}, first.Cells)

	row22 := grid.Rows[21]
	assert.Equal(t, 22, row22.N)
	assert.Equal(t, int64(2), row22.Cells[2].Total)

	empty := RoadGrid(date, nil, testNames)
	assert.Empty(t, empty.Stations)
	assert.Empty(t, empty.Rows)
}

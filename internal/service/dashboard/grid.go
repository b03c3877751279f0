package dashboard

import (
	"sort"
	"strings"
	"time"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

const RoadColumn = "Дорога"

type GridCell struct {
	Total int64 `json:"total"`
	Ktk   int64 `json:"ktk"`
}

type GridRow struct {
	N     int        `json:"n"`
	Label string     `json:"label"`
	Code  string     `json:"code"`
	Cells []GridCell `json:"cells"`
}

// Grid - таблица 2 за день: строки отчета по станциям, последний столбец - сумма по дороге.
type Grid struct {
	Date     time.Time `json:"date"`
	Stations []string  `json:"stations"`
	Rows     []GridRow `json:"rows"`
}

func RoadGrid(date time.Time, records []storage.Table2Record, names storage.StationNames) Grid {
	sorted := make([]storage.Table2Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(names.Name(sorted[i].StationID)) < strings.ToLower(names.Name(sorted[j].StationID))
	})

	grid := Grid{Date: storage.DateOnly(date), Stations: []string{}, Rows: []GridRow{}}
	if len(sorted) == 0 {
		return grid
	}

	for _, r := range sorted {
		grid.Stations = append(grid.Stations, names.Name(r.StationID))
	}
	grid.Stations = append(grid.Stations, RoadColumn)

	for _, row := range constants.Table2Rows {
		gr := GridRow{N: row.N, Label: row.Label, Code: row.Code, Cells: make([]GridCell, 0, len(sorted)+1)}

		var road GridCell
		for _, r := range sorted {
			cell := GridCell{Total: r.Fields.Int(row.TotalKey), Ktk: r.Fields.Int(row.KtkKey)}
			road.Total += cell.Total
			road.Ktk += cell.Ktk
			gr.Cells = append(gr.Cells, cell)
		}
		gr.Cells = append(gr.Cells, road)

		grid.Rows = append(grid.Rows, gr)
	}

	return grid
}

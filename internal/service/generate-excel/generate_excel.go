package generate_excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"station-reports/internal/constants"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type DayReporter interface {
	AdminTable1Day(ctx context.Context, rawDate string) (*reports.AdminDay, error)
}

type GenerateExcelService struct {
	reports DayReporter
}

func NewGenerateService(reports DayReporter) *GenerateExcelService {
	return &GenerateExcelService{reports: reports}
}

// GenerateTable1Day выгружает сводный отчет таблицы 1 за дату в xlsx.
func (g *GenerateExcelService) GenerateTable1Day(ctx context.Context, rawDate string) ([]byte, error) {
	const op = "service.generate_excel.GenerateTable1Day"

	day, err := g.reports.AdminTable1Day(ctx, rawDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := BuildTable1Day(day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

const (
	colName  = 1
	colShift = 2
	colFirst = 3

	rowTitle  = 1
	rowGroup  = 2
	rowLeaf   = 3
	rowFirst  = 4
	freezeTop = "C4"
)

const (
	fillTitle    = "F5F7FB"
	fillSingle   = "F3D6D6"
	fillUborka   = "F3E3B2"
	fillIncome   = "E7EEF7"
	fillTotalRow = "FFF2CC"
	borderColor  = "99A3B3"
)

var familyFills = map[string]string{
	"vygr":     "DFF4DF",
	"pod_vygr": "CFEEDF",
	"pogr":     "D9F2F9",
	"pod_pogr": "C7ECF3",
}

// column - колонка выгрузки; Group пустой у одиночных колонок, объединенных по вертикали.
type column struct {
	Field string
	Label string
	Group string
	Fill  string
}

// exportColumns - порядок колонок как на сайте: без имени терминала и порожних СПС.
func exportColumns() []column {
	single := func(name, fill string) column {
		spec, _ := constants.Lookup(constants.ReportTable1, name)
		return column{Field: name, Label: spec.Label, Fill: fill}
	}
	family := func(f constants.SubtotalFamily) []column {
		specs, _ := constants.Fields(constants.ReportTable1)
		var cols []column
		for _, spec := range specs {
			if spec.Group != f.Prefix {
				continue
			}
			cols = append(cols, column{
				Field: spec.Name,
				Label: strings.TrimPrefix(spec.Label, f.Title+" "),
				Group: f.Title,
				Fill:  familyFills[f.Prefix],
			})
		}
		return cols
	}

	cols := []column{
		single("podano_lc", fillSingle),
		single(constants.FieldPlanQuantity, fillSingle),
	}
	cols = append(cols, family(constants.SubtotalFamilies[0])...)
	cols = append(cols, family(constants.SubtotalFamilies[1])...)
	cols = append(cols, single("uborka", fillUborka))
	cols = append(cols, family(constants.SubtotalFamilies[2])...)
	cols = append(cols, family(constants.SubtotalFamilies[3])...)
	cols = append(cols, single(constants.FieldIncome, fillIncome))

	return cols
}

type styles struct {
	title     int
	header    map[string]int
	vertical  map[string]int
	name      int
	cell      int
	totalCell int
}

func newStyles(f *excelize.File, cols []column) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	vertical := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true, TextRotation: 90}
	fill := func(color string) excelize.Fill {
		if color == "" {
			return excelize.Fill{}
		}
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}

	var (
		s   = styles{header: map[string]int{}, vertical: map[string]int{}}
		err error
	)

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Fill:      fill(fillTitle),
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}

	fills := map[string]bool{"": true}
	for _, c := range cols {
		fills[c.Fill] = true
	}
	for color := range fills {
		if s.header[color], err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true}, Fill: fill(color), Alignment: center, Border: border,
		}); err != nil {
			return s, err
		}
		if s.vertical[color], err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true}, Fill: fill(color), Alignment: vertical, Border: border,
		}); err != nil {
			return s, err
		}
	}

	if s.name, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Alignment: center, Border: border}); err != nil {
		return s, err
	}
	if s.totalCell, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true}, Fill: fill(fillTotalRow), Alignment: center, Border: border,
	}); err != nil {
		return s, err
	}

	return s, nil
}

// BuildTable1Day строит лист: строка заголовка, две строки шапки по семействам, по строке на смену.
// Ночная строка пропускается у станций без ночной смены.
func BuildTable1Day(day *reports.AdminDay) (*excelize.File, error) {
	cols := exportColumns()
	lastCol := colFirst + len(cols) - 1

	f := excelize.NewFile()
	sheet := "Таблица 1 " + day.Date.Format("02.01.2006")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	st, err := newStyles(f, cols)
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet}

	// --- заголовок ---
	w.merge(colName, rowTitle, lastCol, rowTitle)
	w.set(colName, rowTitle, "Оперативная информация (Таблица 1) - "+day.Date.Format("02.01.2006"))
	w.style(colName, rowTitle, lastCol, rowTitle, st.title)
	w.height(rowTitle, 24)

	// --- шапка ---
	w.height(rowGroup, 34)
	w.height(rowLeaf, 110)

	w.merge(colName, rowGroup, colName, rowLeaf)
	w.set(colName, rowGroup, "Станция")
	w.merge(colShift, rowGroup, colShift, rowLeaf)
	w.set(colShift, rowGroup, "Смена")
	w.style(colName, rowGroup, colShift, rowLeaf, st.header[""])

	for i := 0; i < len(cols); {
		c := cols[i]
		col := colFirst + i

		if c.Group == "" {
			w.merge(col, rowGroup, col, rowLeaf)
			w.set(col, rowGroup, c.Label)
			w.style(col, rowGroup, col, rowLeaf, st.vertical[c.Fill])
			i++
			continue
		}

		end := i
		for end+1 < len(cols) && cols[end+1].Group == c.Group {
			end++
		}
		w.merge(col, rowGroup, colFirst+end, rowGroup)
		w.set(col, rowGroup, c.Group)
		w.style(col, rowGroup, colFirst+end, rowGroup, st.header[c.Fill])
		for j := i; j <= end; j++ {
			w.set(colFirst+j, rowLeaf, cols[j].Label)
		}
		w.style(col, rowLeaf, colFirst+end, rowLeaf, st.vertical[c.Fill])
		i = end + 1
	}

	// --- данные ---
	row := rowFirst
	for _, r := range day.Rows {
		span := 2
		if r.HasNightShift {
			span = 3
		}

		w.merge(colName, row, colName, row+span-1)
		w.set(colName, row, r.Name)
		w.style(colName, row, colName, row+span-1, st.name)

		w.shiftRow(row, "день", r.Day, cols, st.cell)
		row++
		if r.HasNightShift {
			w.shiftRow(row, "ночь", r.Night, cols, st.cell)
			row++
		}
		w.shiftRow(row, "итого", r.Total, cols, st.totalCell)
		row++
	}

	// --- финальные штрихи ---
	w.try(f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      colShift,
		YSplit:      rowLeaf,
		TopLeftCell: freezeTop,
		ActivePane:  "bottomRight",
	}))
	w.try(f.SetColWidth(sheet, "A", "A", 22))
	w.try(f.SetColWidth(sheet, "B", "B", 10))
	w.try(f.SetColWidth(sheet, cellCol(colFirst), cellCol(lastCol), 10))

	landscape := "landscape"
	fitWidth := 1
	w.try(f.SetPageLayout(sheet, &excelize.PageLayoutOptions{Orientation: &landscape, FitToWidth: &fitWidth}))

	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	return f, nil
}

// sheetWriter запоминает первую ошибку excelize, чтобы не проверять каждый вызов.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) try(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *sheetWriter) set(col, row int, v interface{}) {
	w.try(w.f.SetCellValue(w.sheet, cellName(col, row), v))
}

func (w *sheetWriter) merge(c1, r1, c2, r2 int) {
	w.try(w.f.MergeCell(w.sheet, cellName(c1, r1), cellName(c2, r2)))
}

func (w *sheetWriter) style(c1, r1, c2, r2, style int) {
	w.try(w.f.SetCellStyle(w.sheet, cellName(c1, r1), cellName(c2, r2), style))
}

func (w *sheetWriter) height(row int, h float64) {
	w.try(w.f.SetRowHeight(w.sheet, row, h))
}

func (w *sheetWriter) shiftRow(row int, label string, data storage.Fields, cols []column, style int) {
	w.set(colShift, row, label)
	for i, c := range cols {
		w.set(colFirst+i, row, data.Int(c.Field))
	}
	w.style(colShift, row, colFirst+len(cols)-1, row, style)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func cellCol(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

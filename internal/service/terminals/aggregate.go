package terminals

import (
	"sort"

	"github.com/samber/lo"

	"station-reports/internal/constants"
	"station-reports/internal/service/reconcile"
	"station-reports/internal/storage"
)

// Aggregate сводит записи одной смены по всем терминалам станции в одну карту.
// Числовые поля суммируются; общие поля (имя терминала, к подаче со ст) берутся из
// терминала с наименьшим номером, где значение не пустое.
func Aggregate(records []storage.ShiftRecord) storage.Fields {
	blocks := make([]storage.ShiftRecord, len(records))
	copy(blocks, records)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Block < blocks[j].Block })

	names := lo.Uniq(lo.FlatMap(blocks, func(r storage.ShiftRecord, _ int) []string {
		return lo.Keys(r.Fields)
	}))

	out := make(storage.Fields, len(names))
	for _, name := range names {
		if constants.IsCommon(constants.ReportTable1, name) {
			out[name] = firstNonEmpty(blocks, name)
			continue
		}
		out[name] = sumField(blocks, name)
	}

	return out
}

func firstNonEmpty(blocks []storage.ShiftRecord, name string) storage.Value {
	var first storage.Value
	seen := false

	for _, b := range blocks {
		v, ok := b.Fields[name]
		if !ok {
			continue
		}
		if !seen {
			first, seen = v, true
		}
		if !v.Empty() {
			return v
		}
	}

	return first
}

func sumField(blocks []storage.ShiftRecord, name string) storage.Value {
	var sum int64
	numeric := false

	for _, b := range blocks {
		v, ok := b.Fields[name]
		if !ok || v.IsText {
			continue
		}
		sum += v.Num
		numeric = true
	}

	// поле, которое есть только в виде текста, не суммируется
	if !numeric {
		return firstNonEmpty(blocks, name)
	}
	return storage.Int(sum)
}

type StationShifts struct {
	Day   storage.Fields `json:"day"`
	Night storage.Fields `json:"night"`
	Total storage.Fields `json:"total"`
}

// ByShift раскладывает записи станции за дату по сменам, сводит терминалы и
// заново применяет правила ИТОГО к каждой смене.
func ByShift(records []storage.ShiftRecord) StationShifts {
	grouped := lo.GroupBy(records, func(r storage.ShiftRecord) storage.Shift { return r.Shift })

	return StationShifts{
		Day:   reconcile.ApplySubtotalRules(Aggregate(grouped[storage.ShiftDay])),
		Night: reconcile.ApplySubtotalRules(Aggregate(grouped[storage.ShiftNight])),
		Total: reconcile.ApplySubtotalRules(Aggregate(grouped[storage.ShiftTotal])),
	}
}

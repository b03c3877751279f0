package reconcile

import (
	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

// Input - сырые значения формы одного терминала за дату.
type Input struct {
	Day    map[string]any
	Night  map[string]any
	Common map[string]any
	// Manual - ручные значения итоговой смены (total__*), включая доход.
	Manual   map[string]any
	HasNight bool
}

type Result struct {
	Day   storage.Fields
	Night storage.Fields
	Total storage.Fields
}

// Reconcile строит согласованные день, ночь и итог:
// сумма день+ночь -> ручные правки -> пересчет ИТОГО -> доход.
func Reconcile(in Input) (Result, error) {
	day, err := ParseFields(constants.ReportTable1, in.Day, true)
	if err != nil {
		return Result{}, err
	}

	night := storage.Fields{}
	if in.HasNight {
		night, err = ParseFields(constants.ReportTable1, in.Night, true)
		if err != nil {
			return Result{}, err
		}
	}

	for _, spec := range table1Specs {
		if spec.Role != constants.RoleCommon {
			continue
		}
		v := parseValue(spec, in.Common[spec.Name])
		day[spec.Name] = v
		if in.HasNight {
			night[spec.Name] = v
		}
	}

	day = ApplySubtotalRules(day)
	if in.HasNight {
		night = ApplySubtotalRules(night)
	}

	manual := make(map[string]string, len(in.Manual))
	for k, v := range in.Manual {
		manual[k] = RawString(v)
	}

	total := ComputeDayNightTotal(day, night, in.HasNight)
	total = ApplyManualOverrides(total, manual)
	total = ApplySubtotalRules(total)
	total[constants.FieldIncome] = storage.Int(ResolveIncome(total, manual[constants.FieldIncome]))

	return Result{Day: day, Night: night, Total: total}, nil
}

package reconcile

import (
	"strings"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

var table1Specs, _ = constants.Fields(constants.ReportTable1)

// ComputeDayNightTotal складывает день и ночь по каждому числовому полю.
// Общие поля переносятся как есть, доход обнуляется до шага ResolveIncome.
func ComputeDayNightTotal(day, night storage.Fields, hasNight bool) storage.Fields {
	total := make(storage.Fields, len(table1Specs))

	for _, spec := range table1Specs {
		switch {
		case spec.Role == constants.RoleCommon:
			total[spec.Name] = commonValue(spec, day, night)
		case spec.Role == constants.RoleIncome:
			total[spec.Name] = storage.Int(0)
		case spec.Kind == constants.KindNumeric:
			sum := day.Int(spec.Name)
			if hasNight {
				sum += night.Int(spec.Name)
			}
			total[spec.Name] = storage.Int(sum)
		}
	}

	return total
}

func commonValue(spec constants.MetricFieldSpec, day, night storage.Fields) storage.Value {
	if v, ok := day[spec.Name]; ok {
		return v
	}
	if v, ok := night[spec.Name]; ok {
		return v
	}
	if spec.Kind == constants.KindText {
		return storage.Text("")
	}
	return storage.Int(0)
}

// ApplyManualOverrides заменяет автоматическую сумму ручным значением итога.
// Выполняется строго после ComputeDayNightTotal: ручное значение всегда побеждает.
func ApplyManualOverrides(total storage.Fields, manual map[string]string) storage.Fields {
	out := total.Clone()

	for _, spec := range table1Specs {
		if !spec.Summable() {
			continue
		}

		raw := strings.TrimSpace(manual[spec.Name])
		if raw == "" {
			continue
		}
		out[spec.Name] = storage.Int(ParseIntOrZero(raw))
	}

	return out
}

// ResolveIncome: ручной доход берется как есть, иначе доход - сумма всех числовых полей итога,
// кроме самого дохода и общих полей.
func ResolveIncome(total storage.Fields, manualIncome string) int64 {
	if raw := strings.TrimSpace(manualIncome); raw != "" {
		return ParseIntOrZero(raw)
	}

	var income int64
	for name, v := range total {
		if v.IsText || name == constants.FieldIncome || constants.IsCommon(constants.ReportTable1, name) {
			continue
		}
		income += v.Num
	}

	return income
}

// ApplySubtotalRules пересчитывает ИТОГО и ИТОГО КОН каждого семейства из листовых полей.
// Пересчитываются только ключи, которые уже есть в карте. Хранимым итогам не доверяем:
// функция вызывается и при сохранении, и при каждом чтении для сводных отчетов.
func ApplySubtotalRules(values storage.Fields) storage.Fields {
	out := values.Clone()

	for _, f := range constants.SubtotalFamilies {
		if _, ok := out[f.SubtotalKey]; ok {
			var sum int64
			for _, leaf := range f.Leaves {
				sum += out.Int(leaf)
			}
			out[f.SubtotalKey] = storage.Int(sum)
		}

		if _, ok := out[f.ContainerKey]; ok {
			out[f.ContainerKey] = storage.Int(out.Int(f.ContainerLeaf))
		}
	}

	return out
}

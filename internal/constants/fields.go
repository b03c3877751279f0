package constants

import (
	"errors"
	"fmt"
)

type ReportType string

const (
	ReportTable1 ReportType = "table1"
	ReportTable2 ReportType = "table2"
)

var ErrUnknownReportType = errors.New("unknown report type")

type FieldKind int

const (
	KindNumeric FieldKind = iota
	KindText
)

// FieldRole задает, как поле участвует в расчете итоговой смены.
type FieldRole int

const (
	RolePlain FieldRole = iota
	// RoleCommon - вводится один раз на станцию/дату и копируется в день, ночь и итог без суммирования.
	RoleCommon
	RoleIncome
	RoleSubtotal
	RoleContainerSubtotal
)

type MetricFieldSpec struct {
	Name  string
	Label string
	Kind  FieldKind
	Role  FieldRole
	// Group - префикс семейства (vygr, pod_vygr, pogr, pod_pogr), в итог которого входит поле.
	Group string
}

func (s MetricFieldSpec) IsNumeric() bool { return s.Kind == KindNumeric }

// Summable - поле суммируется день+ночь и входит в автоматический доход.
func (s MetricFieldSpec) Summable() bool {
	return s.Kind == KindNumeric && s.Role != RoleCommon && s.Role != RoleIncome
}

type FieldLabel struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

const (
	FieldIncome       = "income_daily"
	FieldPlanQuantity = "k_podache_so_st"
	FieldTerminalName = "terminal_name"
)

func Fields(rt ReportType) ([]MetricFieldSpec, error) {
	switch rt {
	case ReportTable1:
		return table1Fields, nil
	case ReportTable2:
		return table2Fields, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, rt)
	}
}

// Labels возвращает упорядоченные пары (поле, подпись) для отчета.
func Labels(rt ReportType) ([]FieldLabel, error) {
	specs, err := Fields(rt)
	if err != nil {
		return nil, err
	}

	out := make([]FieldLabel, 0, len(specs))
	for _, s := range specs {
		out = append(out, FieldLabel{Name: s.Name, Label: s.Label})
	}

	return out, nil
}

func Lookup(rt ReportType, name string) (MetricFieldSpec, bool) {
	var idx map[string]MetricFieldSpec
	switch rt {
	case ReportTable1:
		idx = table1Index
	case ReportTable2:
		idx = table2Index
	default:
		return MetricFieldSpec{}, false
	}

	spec, ok := idx[name]
	return spec, ok
}

// CommonFields - поля с семантикой "первое непустое" при сложении терминалов.
func CommonFields(rt ReportType) []string {
	specs, err := Fields(rt)
	if err != nil {
		return nil
	}

	var out []string
	for _, s := range specs {
		if s.Role == RoleCommon {
			out = append(out, s.Name)
		}
	}

	return out
}

func IsCommon(rt ReportType, name string) bool {
	spec, ok := Lookup(rt, name)
	return ok && spec.Role == RoleCommon
}

func index(specs []MetricFieldSpec) map[string]MetricFieldSpec {
	idx := make(map[string]MetricFieldSpec, len(specs))
	for _, s := range specs {
		idx[s.Name] = s
	}
	return idx
}

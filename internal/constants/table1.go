package constants

// SubtotalFamily - блок полей с общим префиксом и двумя производными ключами (ИТОГО, ИТОГО КОН).
type SubtotalFamily struct {
	Prefix        string
	Title         string
	SubtotalKey   string
	ContainerKey  string
	Leaves        [4]string
	ContainerLeaf string
}

var SubtotalFamilies = []SubtotalFamily{
	newFamily("vygr", "Выгрузка"),
	newFamily("pod_vygr", "Под выгрузкой"),
	newFamily("pogr", "Погрузка"),
	newFamily("pod_pogr", "Под погрузкой"),
}

func newFamily(prefix, title string) SubtotalFamily {
	return SubtotalFamily{
		Prefix:        prefix,
		Title:         title,
		SubtotalKey:   prefix + "_itogo",
		ContainerKey:  prefix + "_itogo_kon",
		Leaves:        [4]string{prefix + "_ft", prefix + "_kr", prefix + "_pv", prefix + "_proch"},
		ContainerLeaf: prefix + "_cont",
	}
}

// SubtotalLeaves отдает для каждого ключа ИТОГО четыре поля, из которых он складывается.
func SubtotalLeaves() map[string][4]string {
	out := make(map[string][4]string, len(SubtotalFamilies))
	for _, f := range SubtotalFamilies {
		out[f.SubtotalKey] = f.Leaves
	}
	return out
}

func familyFields(f SubtotalFamily) []MetricFieldSpec {
	leaf := func(suffix, label string) MetricFieldSpec {
		return MetricFieldSpec{Name: f.Prefix + "_" + suffix, Label: f.Title + " " + label, Group: f.Prefix}
	}

	return []MetricFieldSpec{
		leaf("ft", "фт"),
		leaf("cont", "конт."),
		leaf("kr", "кр"),
		leaf("pv", "пв"),
		leaf("proch", "прочие"),
		{Name: f.SubtotalKey, Label: f.Title + " ИТОГО", Role: RoleSubtotal, Group: f.Prefix},
		{Name: f.ContainerKey, Label: f.Title + " ИТОГО КОН", Role: RoleContainerSubtotal, Group: f.Prefix},
	}
}

var table1Fields = func() []MetricFieldSpec {
	specs := []MetricFieldSpec{
		{Name: FieldTerminalName, Label: "Терминал", Kind: KindText, Role: RoleCommon},
		{Name: "podano_lc", Label: "Подано на ЛЦ"},
		{Name: FieldPlanQuantity, Label: "к подаче со ст", Role: RoleCommon},
	}
	specs = append(specs, familyFields(SubtotalFamilies[0])...)
	specs = append(specs, familyFields(SubtotalFamilies[1])...)
	specs = append(specs, MetricFieldSpec{Name: "uborka", Label: "Уборка"})
	specs = append(specs, familyFields(SubtotalFamilies[2])...)
	specs = append(specs, familyFields(SubtotalFamilies[3])...)
	specs = append(specs,
		MetricFieldSpec{Name: "spc_lc", Label: "Порожние СПС ЛЦ"},
		MetricFieldSpec{Name: "spc_station", Label: "Порожние СПС СТАНЦИЯ"},
		MetricFieldSpec{Name: FieldIncome, Label: "Суточные доходы", Role: RoleIncome},
	)
	return specs
}()

var table1Index = index(table1Fields)

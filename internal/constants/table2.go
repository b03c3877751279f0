package constants

type Table2Row struct {
	N        int    `json:"n"`
	Label    string `json:"label"`
	Code     string `json:"code"`
	TotalKey string `json:"total_key"`
	KtkKey   string `json:"ktk_key"`
}

// Строка 22 разделена на груженые (g) и порожние (p).
const (
	R22GTotal = "r22g_total"
	R22GKtk   = "r22g_ktk"
	R22PTotal = "r22p_total"
	R22PKtk   = "r22p_ktk"
)

const FieldCargoName = "cargo_name"

var Table2Rows = []Table2Row{
	{1, "Прибыло всего:", "П", "r01_total", "r01_ktk"},
	{2, "В том числе груж.всего", "ПГ", "r02_total", "r02_ktk"},
	{3, "Из них под сортировку", "ПГС", "r03_total", "r03_ktk"},
	{4, "Порожних", "ПП", "r04_total", "r04_ktk"},
	{5, "Поступило из ремонта", "ИН", "r05_total", "r05_ktk"},
	{6, "Поступило соб.(приват)", "ПС", "r06_total", "r06_ktk"},
	{7, "Поступило новых", "Н", "r07_total", "r07_ktk"},
	{8, "Принято на баланс", "ПБ", "r08_total", "r08_ktk"},
	{9, "Изъято из резерва", "ПР", "r09_total", "r09_ktk"},
	{10, "Изъято из запаса", "ПЗ", "r10_total", "r10_ktk"},
	{11, "Завоз автотранспортом", "ПТ", "r11_total", "r11_ktk"},
	{12, "Погружено-всего:", "С", "r12_total", "r12_ktk"},
	{13, "В том числе груженых", "СГ", "r13_total", "r13_ktk"},
	{14, "порожних", "СП", "r14_total", "r14_ktk"},
	{15, "Поступило в ремонт", "СН", "r15_total", "r15_ktk"},
	{16, "Выбыло соб.(приват)", "СС", "r16_total", "r16_ktk"},
	{17, "Исключено", "ИН", "r17_total", "r17_ktk"},
	{18, "Передано на баланс", "СБ", "r18_total", "r18_ktk"},
	{19, "Отставание в резерве", "СР", "r19_total", "r19_ktk"},
	{20, "Отставание в запасе", "СЗ", "r20_total", "r20_ktk"},
	{21, "Вывоз автотранспортом", "СТ", "r21_total", "r21_ktk"},
	{22, "Загружено", "З", R22GTotal, R22GKtk},
	{23, "Разгружено", "Р", "r23_total", "r23_ktk"},
	{24, "Порожние на КП", "В", "r24_total", "r24_ktk"},
	{25, "В рабочем парке на лц", "ВР", "r25_total", "r25_ktk"},
	{26, "В том числе груженых", "ВРГ", "r26_total", "r26_ktk"},
	{27, "Из них под сортировку", "ВРГС", "r27_total", "r27_ktk"},
	{28, "Готовых к отправлению", "ВРГО", "r28_total", "r28_ktk"},
	{29, "К вывозу", "ВРВ", "r29_total", "r29_ktk"},
	{30, "Порожних", "ВРП", "r30_total", "r30_ktk"},
	{31, "в нерабочем парке", "ВН", "r31_total", "r31_ktk"},
	{32, "В том числе в резерве", "ВНР", "r32_total", "r32_ktk"},
	{33, "Неисправных", "ВНИ", "r33_total", "r33_ktk"},
	{34, "Наличие в запасе", "КЗ", "r34_total", "r34_ktk"},
}

// Нижний блок: доходы, объемы и тройки емкость/факт/свободно.
var table2Bottom = []MetricFieldSpec{
	{Name: FieldIncome, Label: "Суточный доход"},

	{Name: "vygr_wag_total", Label: "Выгрузка вагонов всего"},
	{Name: "vygr_wag_ktk", Label: "Выгрузка вагонов КТК"},
	{Name: "vygr_tonn", Label: "Выгрузка тонн"},
	{Name: "vygr_income", Label: "Выгрузка доход"},

	{Name: "pogr_wag_total", Label: "Погрузка вагонов всего"},
	{Name: "pogr_wag_ktk", Label: "Погрузка вагонов КТК"},
	{Name: "pogr_tonn", Label: "Погрузка тонн"},
	{Name: "pogr_income", Label: "Погрузка доход"},

	{Name: "os_wag_total", Label: "ОС вагонов всего"},
	{Name: "os_wag_ktk", Label: "ОС вагонов КТК"},
	{Name: "os_tonn", Label: "ОС тонн"},
	{Name: "os_income", Label: "ОС доход"},

	{Name: FieldCargoName, Label: "Наименование груза", Kind: KindText},
	{Name: "cargo_volume", Label: "Объем груза"},
	{Name: "cargo_income", Label: "Доход по грузу"},

	{Name: "kp_fp_capacity", Label: "КП ФП емкость"},
	{Name: "kp_fp_fact", Label: "КП ФП факт"},
	{Name: "kp_fp_free", Label: "КП ФП свободно"},
	{Name: "kp_uus_capacity", Label: "КП УУС емкость"},
	{Name: "kp_uus_fact", Label: "КП УУС факт"},
	{Name: "kp_uus_free", Label: "КП УУС свободно"},
	{Name: "kp_ready_send", Label: "Готово к отправке"},
	{Name: "kp_ready_autocar", Label: "Готово к вывозу авто"},
	{Name: "kp_ready_send_capacity", Label: "Готово к отправке емкость"},
	{Name: "kp_ready_send_fact", Label: "Готово к отправке факт"},
	{Name: "kp_ready_send_free", Label: "Готово к отправке свободно"},
	{Name: "kp_ready_autocar_capacity", Label: "Вывоз авто емкость"},
	{Name: "kp_ready_autocar_fact", Label: "Вывоз авто факт"},
	{Name: "kp_ready_autocar_free", Label: "Вывоз авто свободно"},
}

var table2Fields = func() []MetricFieldSpec {
	specs := make([]MetricFieldSpec, 0, len(Table2Rows)*2+2+len(table2Bottom))
	for _, row := range Table2Rows {
		specs = append(specs,
			MetricFieldSpec{Name: row.TotalKey, Label: row.Label + " всего"},
			MetricFieldSpec{Name: row.KtkKey, Label: row.Label + " КТК"},
		)
		if row.N == 22 {
			specs = append(specs,
				MetricFieldSpec{Name: R22PTotal, Label: "Загружено порожних всего"},
				MetricFieldSpec{Name: R22PKtk, Label: "Загружено порожних КТК"},
			)
		}
	}
	return append(specs, table2Bottom...)
}()

var table2Index = index(table2Fields)

package constants

import "strings"

// MetricFamily - поля отчета, отобранные по префиксу имени, с исключением вложенного семейства
// (vygr* без pod_vygr*).
type MetricFamily struct {
	Key     string
	Prefix  string
	Exclude string
}

func (f MetricFamily) Matches(name string) bool {
	if !strings.HasPrefix(name, f.Prefix) {
		return false
	}
	return f.Exclude == "" || !strings.HasPrefix(name, f.Exclude)
}

var (
	FamilyPodVygr = MetricFamily{Key: "pod_vygr", Prefix: "pod_vygr"}
	FamilyVygr    = MetricFamily{Key: "vygr", Prefix: "vygr", Exclude: "pod_vygr"}
	FamilyPodPogr = MetricFamily{Key: "pod_pogr", Prefix: "pod_pogr"}
	FamilyPogr    = MetricFamily{Key: "pogr", Prefix: "pogr", Exclude: "pod_pogr"}
)

var KPIFamilies = []MetricFamily{FamilyPodVygr, FamilyVygr, FamilyPodPogr, FamilyPogr}

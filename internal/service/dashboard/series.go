package dashboard

// Series - подписи и значения для графика.
type Series struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// StackedSeries - две составляющие на одну подпись: SeriesA - выгрузка, SeriesB - погрузка.
type StackedSeries struct {
	Labels  []string `json:"labels"`
	SeriesA []int64  `json:"series_a"`
	SeriesB []int64  `json:"series_b"`
}

func newSeries(n int) Series {
	return Series{Labels: make([]string, 0, n), Values: make([]int64, 0, n)}
}

func newStacked(n int) StackedSeries {
	return StackedSeries{Labels: make([]string, 0, n), SeriesA: make([]int64, 0, n), SeriesB: make([]int64, 0, n)}
}

func (s *StackedSeries) add(label string, a, b int64) {
	s.Labels = append(s.Labels, label)
	s.SeriesA = append(s.SeriesA, a)
	s.SeriesB = append(s.SeriesB, b)
}

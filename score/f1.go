package score

// Metrics holds micro-averaged scores and the counts they were computed from.
type Metrics struct {
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
}

type occurrence[T comparable] struct {
	k     int
	value T
}

// disambiguate turns a sequence into a set where the k-th copy of a value
// (0-indexed) becomes the element (k, value).
func disambiguate[T comparable](items []T) map[occurrence[T]]struct{} {
	seen := make(map[T]int, len(items))
	set := make(map[occurrence[T]]struct{}, len(items))
	for _, item := range items {
		set[occurrence[T]{k: seen[item], value: item}] = struct{}{}
		seen[item]++
	}
	return set
}

// MultisetF1 scores predicted against groundTruth. When there are no true
// positives every metric is 0, including when both inputs are empty.
func MultisetF1[T comparable](groundTruth, predicted []T) Metrics {
	gold := disambiguate(groundTruth)
	pred := disambiguate(predicted)

	tp := 0
	for item := range pred {
		if _, ok := gold[item]; ok {
			tp++
		}
	}
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: len(pred) - tp,
		FalseNegatives: len(gold) - tp,
	}
	if tp == 0 {
		return m
	}

	m.Precision = float64(tp) / float64(tp+m.FalsePositives)
	m.Recall = float64(tp) / float64(tp+m.FalseNegatives)
	m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	return m
}

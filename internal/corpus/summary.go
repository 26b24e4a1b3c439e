package corpus

import (
	"math"
	"slices"
	"sort"
)

// ValueCount pairs a category with its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Stats is a descriptive summary of a numeric column. Std is the sample
// standard deviation; quartiles use linear interpolation between ranks.
type Stats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// Summary describes an extraction run for console reporting.
type Summary struct {
	Dir         string                 `json:"dir"`
	Found       int                    `json:"found"`
	Rows        int                    `json:"rows"`
	Diagnostics map[DiagnosticKind]int `json:"diagnostics"`
	Genders     []ValueCount           `json:"genders"`
	Speakers    int                    `json:"speakers"`
	Age         Stats                  `json:"age"`
}

// Summarize computes the run summary.
func (r *Result) Summarize() Summary {
	genders := map[string]int{}
	speakers := map[string]struct{}{}
	ages := make([]float64, 0, len(r.Records))
	for _, rec := range r.Records {
		genders[rec.Gender]++
		speakers[rec.Speaker] = struct{}{}
		ages = append(ages, float64(rec.Age))
	}

	counts := make([]ValueCount, 0, len(genders))
	for value, count := range genders {
		counts = append(counts, ValueCount{Value: value, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})

	return Summary{
		Dir:         r.Dir,
		Found:       r.Found,
		Rows:        len(r.Records),
		Diagnostics: r.CountByKind(),
		Genders:     counts,
		Speakers:    len(speakers),
		Age:         Describe(ages),
	}
}

// Describe computes Stats over values. An empty input yields the zero Stats;
// Std stays zero below two values so the summary remains JSON-encodable.
func Describe(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return Stats{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		Q25:   quantile(sorted, 0.25),
		Q50:   quantile(sorted, 0.50),
		Q75:   quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

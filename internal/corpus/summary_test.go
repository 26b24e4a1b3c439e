package corpus_test

import (
	"math"
	"testing"

	"corpusmeta/internal/corpus"
)

func TestDescribeMatchesLinearQuartiles(t *testing.T) {
	stats := corpus.Describe([]float64{34, 37, 20, 55})
	if stats.Count != 4 || stats.Min != 20 || stats.Max != 55 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Mean != 36.5 {
		t.Fatalf("unexpected mean %v", stats.Mean)
	}
	// sorted 20,34,37,55: q25 at rank 0.75, q50 at 1.5, q75 at 2.25
	if stats.Q25 != 30.5 || stats.Q50 != 35.5 || stats.Q75 != 41.5 {
		t.Fatalf("unexpected quartiles: %+v", stats)
	}
	if math.Abs(stats.Std-14.38749456993816) > 1e-9 {
		t.Fatalf("unexpected std %v", stats.Std)
	}
}

func TestDescribeEdgeCases(t *testing.T) {
	if got := corpus.Describe(nil); got != (corpus.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
	one := corpus.Describe([]float64{42})
	if one.Count != 1 || one.Std != 0 || one.Q50 != 42 {
		t.Fatalf("unexpected single-value stats: %+v", one)
	}
}

func TestSummarizeCountsGendersAndSpeakers(t *testing.T) {
	result := &corpus.Result{
		Found: 4,
		Records: []corpus.Record{
			{Speaker: "M_1", Gender: "male", Age: 30},
			{Speaker: "M_1", Gender: "male", Age: 30},
			{Speaker: "F_2", Gender: "female", Age: 40},
		},
		Diagnostics: []corpus.Diagnostic{{Kind: corpus.DiagParseSkip, File: "x.WAV"}},
	}
	s := result.Summarize()
	if s.Rows != 3 || s.Found != 4 || s.Speakers != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Genders) != 2 || s.Genders[0] != (corpus.ValueCount{Value: "male", Count: 2}) {
		t.Fatalf("unexpected gender counts: %+v", s.Genders)
	}
	if s.Diagnostics[corpus.DiagParseSkip] != 1 {
		t.Fatalf("unexpected diagnostics: %v", s.Diagnostics)
	}
}

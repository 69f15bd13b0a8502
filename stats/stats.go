// Package stats summarises self-play results.
package stats

import (
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Sample is a growing list of observations, such as game lengths or node
// counts.
type Sample struct {
	values []float64
}

func (s *Sample) Push(val float64) {
	s.values = append(s.values, val)
}

func (s *Sample) Len() int {
	return len(s.values)
}

func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// Stdev is the sample standard deviation.
func (s *Sample) Stdev() float64 {
	if len(s.values) <= 1 {
		return 0
	}
	return stat.StdDev(s.values, nil)
}

// Quantile returns the empirical p-quantile, 0 <= p <= 1.
func (s *Sample) Quantile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.values)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// FprintHistogram draws the sample as a text histogram.
func (s *Sample) FprintHistogram(w io.Writer, bins int) error {
	if len(s.values) == 0 {
		_, err := io.WriteString(w, "(no data)\n")
		return err
	}
	h := histogram.Hist(bins, s.values)
	return histogram.Fprint(w, h, histogram.Linear(40))
}

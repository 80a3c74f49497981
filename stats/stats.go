// Package stats summarises the shape of a search: how long candidate lists
// are and how the work split across root tasks.
package stats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
)

const (
	Epsilon = 1e-6
)

var ErrBadBins = errors.New("histogram needs at least one bin")

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm) that also
// tracks the extremes.
type Statistic struct {
	n   int
	min float64
	max float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.n)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.n > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.newS / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Count() int {
	return s.n
}

// Summary is a Statistic frozen for a report.
type Summary struct {
	Count int     `yaml:"count"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
}

func (s *Statistic) Summary() Summary {
	return Summary{Count: s.n, Min: s.min, Max: s.max, Mean: s.Mean(), Stdev: s.Stdev()}
}

// Summarize pushes every value into a fresh Statistic.
func Summarize[T int | uint64](vals []T) Summary {
	s := &Statistic{}
	for _, v := range vals {
		s.Push(float64(v))
	}
	return s.Summary()
}

// Histogram prints a text histogram of vals with the given number of bins,
// bars scaled to width columns.
func Histogram[T int | uint64](w io.Writer, vals []T, bins, width int) error {
	if bins < 1 {
		return fmt.Errorf("%w: %d", ErrBadBins, bins)
	}
	if len(vals) == 0 {
		return nil
	}
	data := make([]float64, len(vals))
	for i, v := range vals {
		data[i] = float64(v)
	}
	if slices.Min(vals) == slices.Max(vals) {
		_, err := fmt.Fprintf(w, "all %d values are %v\n", len(vals), vals[0])
		return err
	}
	h := histogram.Hist(bins, data)
	return histogram.Fprint(w, h, histogram.Linear(width))
}

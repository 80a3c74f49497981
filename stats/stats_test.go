package stats

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Count(), len(c.scores))
	}
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	sum := Summarize([]uint64{7, 3, 11, 3})
	is.Equal(sum.Count, 4)
	is.Equal(sum.Min, 3.0)
	is.Equal(sum.Max, 11.0)
	is.True(FuzzyEqual(sum.Mean, 6))

	empty := Summarize([]int{})
	is.Equal(empty, Summary{})
}

func TestHistogram(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	err := Histogram(&buf, []int{1, 2, 2, 3, 3, 3, 10}, 3, 20)
	is.NoErr(err)
	is.True(buf.Len() > 0)
}

func TestHistogramFlat(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(Histogram(&buf, []uint64{7, 7}, 5, 20))
	is.Equal(buf.String(), "all 2 values are 7\n")

	buf.Reset()
	is.NoErr(Histogram(&buf, []int{}, 5, 20))
	is.Equal(buf.Len(), 0)
}

func TestHistogramRejectsBadBins(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	for _, bins := range []int{0, -3} {
		err := Histogram(&buf, []int{1, 2, 3}, bins, 20)
		is.True(errors.Is(err, ErrBadBins))
		// Also rejected when there is nothing to plot.
		err = Histogram(&buf, []int{}, bins, 20)
		is.True(errors.Is(err, ErrBadBins))
	}
	is.Equal(buf.Len(), 0)
}

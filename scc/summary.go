package scc

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/runningvariance"
	"gonum.org/v1/gonum/stat"
)

// HistogramBins is the number of buckets in the summary histogram.
const HistogramBins = 20

// Summary describes the distribution of coefficients across the tags of a
// run. It is diagnostic output only.
type Summary struct {
	Tags        int
	Occurrences int

	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	P99    float64
	Max    float64

	values []float64
}

// Summarize computes a Summary over scores. An empty slice gives a zero
// Summary.
func Summarize(scores []Score) Summary {
	out := Summary{Tags: len(scores)}
	if len(scores) == 0 {
		return out
	}

	rs := runningvariance.NewRunningStat()
	out.values = make([]float64, 0, len(scores))
	for _, s := range scores {
		rs.Push(s.SCC)
		out.Occurrences += s.Occurrences
		out.values = append(out.values, s.SCC)
	}
	sort.Float64s(out.values)

	out.Mean = rs.Mean()
	out.StdDev = rs.StandardDeviation()
	if math.IsNaN(out.StdDev) {
		// A single tag has no spread
		out.StdDev = 0
	}
	out.Min = out.values[0]
	out.Max = out.values[len(out.values)-1]
	out.Median = stat.Quantile(0.5, stat.Empirical, out.values, nil)
	out.P99 = stat.Quantile(0.99, stat.Empirical, out.values, nil)

	return out
}

// Fprint writes the summary and a histogram of the coefficients to w.
func (s Summary) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d distinct tags from %d occurrences\n", s.Tags, s.Occurrences); err != nil {
		return err
	}
	if s.Tags == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "SCC mean %.6g (sd %.6g) min %.6g median %.6g p99 %.6g max %.6g\n",
		s.Mean, s.StdDev, s.Min, s.Median, s.P99, s.Max); err != nil {
		return err
	}

	hist := histogram.Hist(HistogramBins, s.values)

	return histogram.Fprint(w, hist, histogram.Linear(50))
}

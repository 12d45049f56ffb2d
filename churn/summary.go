package churn

import (
	"errors"
	"math"
	"sort"

	"github.com/pivolan/churn_chart/domain/models"
)

var ErrNoCustomers = errors.New("total customers must be positive")

// Summary holds the key metrics shown next to the chart.
type Summary struct {
	TotalCustomers int
	TotalChurned   int
	ChurnRate      float64 // percent, two decimals
	Average        float64
	Median         float64
	Min            int
	Max            int
	PeakLabel      string
	Quantiles      map[float64]float64
}

var summaryQuantiles = []float64{0.25, 0.75}

// Summarize computes the key metrics of a churn series against the customer base.
func Summarize(cfg models.ChartConfig, totalCustomers int) (*Summary, error) {
	if totalCustomers <= 0 {
		return nil, ErrNoCustomers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	values := cfg.Series.Values
	s := &Summary{TotalCustomers: totalCustomers, Quantiles: map[float64]float64{}}
	if len(values) == 0 {
		return s, nil
	}

	sorted := cfg.Series.FloatValues()
	sort.Float64s(sorted)

	peak := 0
	for i, v := range values {
		s.TotalChurned += v
		if v > values[peak] {
			peak = i
		}
	}
	s.PeakLabel = cfg.CategoryLabels[peak]
	s.Min = int(sorted[0])
	s.Max = cfg.Series.MaxValue()
	s.Average = roundToTwo(float64(s.TotalChurned) / float64(len(values)))

	if len(sorted)%2 == 0 {
		s.Median = roundToTwo((sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2)
	} else {
		s.Median = sorted[len(sorted)/2]
	}
	for _, p := range summaryQuantiles {
		s.Quantiles[p] = roundToTwo(calculateQuantile(sorted, p))
	}
	s.ChurnRate = roundToTwo(float64(s.TotalChurned) / float64(totalCustomers) * 100)
	return s, nil
}

// calculateQuantile interpolates linearly between the two closest ranks.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}

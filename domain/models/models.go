package models

import (
	"errors"
	"fmt"
	"math"
)

type ChartKind string

const ChartKindLine ChartKind = "line"

var (
	ErrLengthMismatch    = errors.New("category labels and series values differ in length")
	ErrUnsupportedKind   = errors.New("unsupported chart kind")
	ErrTensionOutOfRange = errors.New("curve tension must be within [0, 1]")
)

// DataSeries is one named, styled sequence of values plotted against the category axis.
type DataSeries struct {
	Label        string
	Values       []int // Values[i] belongs to CategoryLabels[i]
	LineColor    string
	FillColor    string
	LineWidth    float64
	CurveTension float64
	Filled       bool
}

type AxisOptions struct {
	Title       string
	BeginAtZero bool
}

type DisplayOptions struct {
	Responsive bool
	ShowLegend bool
	X          AxisOptions
	Y          AxisOptions
}

// ChartConfig describes a single chart handed to an external renderer.
// It is built once and not mutated afterwards.
type ChartConfig struct {
	Kind           ChartKind
	CategoryLabels []string
	Series         DataSeries
	Options        DisplayOptions
}

// Validate checks the config before it is passed to a rendering library.
func (c ChartConfig) Validate() error {
	if c.Kind != ChartKindLine {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, c.Kind)
	}
	if len(c.CategoryLabels) != len(c.Series.Values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(c.CategoryLabels), len(c.Series.Values))
	}
	if math.IsNaN(c.Series.CurveTension) || c.Series.CurveTension < 0 || c.Series.CurveTension > 1 {
		return fmt.Errorf("%w: %v", ErrTensionOutOfRange, c.Series.CurveTension)
	}
	return nil
}

// FloatValues returns the series values as float64, the form most chart libraries expect.
func (s DataSeries) FloatValues() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = float64(v)
	}
	return out
}

// MaxValue returns the largest value of the series, or 0 for an empty series.
func (s DataSeries) MaxValue() int {
	if len(s.Values) == 0 {
		return 0
	}
	max := s.Values[0]
	for _, v := range s.Values {
		if v > max {
			max = v
		}
	}
	return max
}

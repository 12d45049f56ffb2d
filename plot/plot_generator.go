package plot

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/churn_chart/domain/models"
)

const (
	defaultImageWidth  = 1024
	defaultImageHeight = 576
)

// ImageRenderer draws the chart as a PNG or SVG image.
type ImageRenderer struct {
	Format string // "png" or "svg"
	Width  int
	Height int
}

func (r *ImageRenderer) Render(w io.Writer, cfg models.ChartConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chart config: %w", err)
	}
	var provider chart.RendererProvider
	switch r.Format {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: image format %q", ErrUnknownFormat, r.Format)
	}

	graph, err := DrawLineChart(cfg, r.Width, r.Height)
	if err != nil {
		return err
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(provider, buffer); err != nil {
		return fmt.Errorf("error rendering chart: %v", err)
	}
	_, err = buffer.WriteTo(w)
	return err
}

// DrawLineChart maps the config onto a go-chart line chart with one tick per category.
// go-chart draws straight segments, the curve tension is not representable.
func DrawLineChart(cfg models.ChartConfig, width, height int) (*chart.Chart, error) {
	if width <= 0 {
		width = defaultImageWidth
	}
	if height <= 0 {
		height = defaultImageHeight
	}
	lineColor, err := parseColor(cfg.Series.LineColor)
	if err != nil {
		return nil, err
	}

	style := chart.Style{
		StrokeColor: lineColor,
		StrokeWidth: cfg.Series.LineWidth,
		DotColor:    lineColor,
		DotWidth:    3,
	}
	if cfg.Series.Filled {
		if style.FillColor, err = parseColor(cfg.Series.FillColor); err != nil {
			return nil, err
		}
	}

	n := len(cfg.CategoryLabels)
	xValues := make([]float64, n)
	xTicks := make([]chart.Tick, n)
	for i, label := range cfg.CategoryLabels {
		xValues[i] = float64(i)
		xTicks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	yValues := cfg.Series.FloatValues()
	yMin, yMax, yTicks := generateGrid(yValues, cfg.Options.Y.BeginAtZero)

	graph := &chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{
			Name:  cfg.Options.X.Title,
			Ticks: xTicks,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(n-1), 1)},
		},
		YAxis: chart.YAxis{
			Name:  cfg.Options.Y.Title,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: yTicks,
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.ColorFromHex("efefef"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		Series: []chart.Series{
			&chart.ContinuousSeries{
				Name:    cfg.Series.Label,
				XValues: xValues,
				YValues: yValues,
				Style:   style,
			},
		},
	}
	if cfg.Options.ShowLegend {
		graph.Elements = []chart.Renderable{chart.Legend(graph)}
	}
	return graph, nil
}

// generateGrid returns the y range and its ticks, rounded out to whole grid steps.
func generateGrid(values []float64, beginAtZero bool) (min, max float64, ticks []chart.Tick) {
	min, max = findMinValue(values), findMaxValue(values)
	if beginAtZero {
		min = math.Min(min, 0)
	}
	step := calculateGridStep(max - min)
	if step == 0 {
		step = 1
	}
	min = math.Floor(min/step) * step
	max = math.Ceil(max/step) * step
	if max <= min {
		max = min + step
	}
	for v := min; v <= max+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return min, max, ticks
}

// calculateGridStep picks a "nice" grid step (multiples of 2, 5 and 10) for a value span.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func findMinValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	min := y[0]
	for _, v := range y {
		if v < min {
			min = v
		}
	}
	return min
}

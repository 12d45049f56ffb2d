package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/churn_chart/domain/models"
)

var ErrInvalidElementID = errors.New("element id is not a valid chart id")

// go-echarts turns the chart id into JavaScript variable names.
var echartsIDPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// EChartsRenderer writes a standalone page whose chart container carries ElementID.
type EChartsRenderer struct {
	ElementID  string
	PageTitle  string
	AssetsHost string
	Width      int
	Height     int
}

func (r *EChartsRenderer) Render(w io.Writer, cfg models.ChartConfig) error {
	if r.ElementID == "" {
		return fmt.Errorf("%w: empty id", ErrElementNotFound)
	}
	if !echartsIDPattern.MatchString(r.ElementID) {
		return fmt.Errorf("%w: %q must be a JavaScript identifier", ErrInvalidElementID, r.ElementID)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chart config: %w", err)
	}

	var buf bytes.Buffer
	if err := r.newLine(cfg).Render(&buf); err != nil {
		return fmt.Errorf("render echarts page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *EChartsRenderer) newLine(cfg models.ChartConfig) *charts.Line {
	initOpts := opts.Initialization{
		PageTitle:  r.PageTitle,
		ChartID:    r.ElementID,
		AssetsHost: r.AssetsHost,
	}
	if r.Width > 0 {
		initOpts.Width = fmt.Sprintf("%dpx", r.Width)
	}
	if r.Height > 0 {
		initOpts.Height = fmt.Sprintf("%dpx", r.Height)
	}

	yAxis := opts.YAxis{Name: cfg.Options.Y.Title}
	if cfg.Options.Y.BeginAtZero {
		yAxis.Min = 0
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(cfg.Options.ShowLegend)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: cfg.Options.X.Title}),
		charts.WithYAxisOpts(yAxis),
	)

	items := make([]opts.LineData, len(cfg.Series.Values))
	for i, v := range cfg.Series.Values {
		items[i] = opts.LineData{Name: cfg.CategoryLabels[i], Value: v}
	}

	// ECharts has no tension factor, any positive tension maps to a smoothed line.
	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(cfg.Series.CurveTension > 0)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: cfg.Series.LineColor, Width: float32(cfg.Series.LineWidth)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: cfg.Series.LineColor}),
	}
	if cfg.Series.Filled {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: cfg.Series.FillColor}))
	}

	line.SetXAxis(cfg.CategoryLabels).AddSeries(cfg.Series.Label, items, seriesOpts...)
	return line
}

package plot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pivolan/churn_chart/domain/models"
)

type chartJSConfig struct {
	Type    string         `json:"type"`
	Data    chartJSData    `json:"data"`
	Options chartJSOptions `json:"options"`
}

type chartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []chartJSDataset `json:"datasets"`
}

type chartJSDataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	BorderWidth     float64 `json:"borderWidth"`
	Tension         float64 `json:"tension"`
	Fill            bool    `json:"fill"`
}

type chartJSOptions struct {
	Responsive bool                    `json:"responsive"`
	Plugins    chartJSPlugins          `json:"plugins"`
	Scales     map[string]chartJSScale `json:"scales"`
}

type chartJSPlugins struct {
	Legend chartJSLegend `json:"legend"`
}

type chartJSLegend struct {
	Display bool `json:"display"`
}

type chartJSScale struct {
	BeginAtZero bool              `json:"beginAtZero,omitempty"`
	Title       chartJSScaleTitle `json:"title"`
}

type chartJSScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

func newChartJSConfig(cfg models.ChartConfig) chartJSConfig {
	s := cfg.Series
	return chartJSConfig{
		Type: string(cfg.Kind),
		Data: chartJSData{
			Labels: cfg.CategoryLabels,
			Datasets: []chartJSDataset{{
				Label:           s.Label,
				Data:            s.Values,
				BorderColor:     s.LineColor,
				BackgroundColor: s.FillColor,
				BorderWidth:     s.LineWidth,
				Tension:         s.CurveTension,
				Fill:            s.Filled,
			}},
		},
		Options: chartJSOptions{
			Responsive: cfg.Options.Responsive,
			Plugins:    chartJSPlugins{Legend: chartJSLegend{Display: cfg.Options.ShowLegend}},
			Scales: map[string]chartJSScale{
				"x": newChartJSScale(cfg.Options.X),
				"y": newChartJSScale(cfg.Options.Y),
			},
		},
	}
}

func newChartJSScale(a models.AxisOptions) chartJSScale {
	return chartJSScale{
		BeginAtZero: a.BeginAtZero,
		Title:       chartJSScaleTitle{Display: a.Title != "", Text: a.Title},
	}
}

// MarshalChartJS encodes the config in the shape the Chart.js constructor takes.
func MarshalChartJS(cfg models.ChartConfig, indent bool) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chart config: %w", err)
	}
	if indent {
		return json.MarshalIndent(newChartJSConfig(cfg), "", "    ")
	}
	return json.Marshal(newChartJSConfig(cfg))
}

// chartJSInitScript builds the call that binds the chart to the element's 2d context.
// json.Marshal escapes <, > and & so the payload cannot close the script tag.
func chartJSInitScript(elementID string, cfg models.ChartConfig) (string, error) {
	payload, err := MarshalChartJS(cfg, false)
	if err != nil {
		return "", err
	}
	id, err := json.Marshal(elementID)
	if err != nil {
		return "", fmt.Errorf("encode element id: %w", err)
	}
	return fmt.Sprintf("\n{\n  const ctx = document.getElementById(%s).getContext('2d');\n  new Chart(ctx, %s);\n}\n", id, payload), nil
}

// ChartJSRenderer draws into a canvas of a host page through Chart.js.
// A renderer given an explicit Page can render once: the surface stays owned by the chart.
type ChartJSRenderer struct {
	Page      *HostPage
	ElementID string
	ScriptSrc string
}

func (r *ChartJSRenderer) Render(w io.Writer, cfg models.ChartConfig) error {
	page := r.Page
	if page == nil {
		var err error
		if page, err = DefaultHostPage(); err != nil {
			return err
		}
	}
	surface, err := page.Surface(r.ElementID)
	if err != nil {
		return err
	}
	if err := surface.Draw(cfg, r.ScriptSrc); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render host page: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

package plot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/churn_chart/churn"
)

const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js"

func TestMarshalChartJS(t *testing.T) {
	data, err := MarshalChartJS(churn.MonthlyChurnChart(), false)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "line",
		"data": {
			"labels": ["Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"],
			"datasets": [{
				"label": "Number of Customers Who Left",
				"data": [45, 60, 55, 70, 80, 65, 90, 85, 75, 95, 110, 90],
				"borderColor": "#e74c3c",
				"backgroundColor": "rgba(231, 76, 60, 0.2)",
				"borderWidth": 2,
				"tension": 0.3,
				"fill": true
			}]
		},
		"options": {
			"responsive": true,
			"plugins": {"legend": {"display": true}},
			"scales": {
				"y": {"beginAtZero": true, "title": {"display": true, "text": "Number of Customers"}},
				"x": {"title": {"display": true, "text": "Month"}}
			}
		}
	}`, string(data))
}

func TestMarshalChartJSRejectsInvalidConfig(t *testing.T) {
	cfg := churn.MonthlyChurnChart()
	cfg.CategoryLabels = cfg.CategoryLabels[:6]
	_, err := MarshalChartJS(cfg, true)
	assert.Error(t, err)
}

func TestChartJSRendererDefaultPage(t *testing.T) {
	r := &ChartJSRenderer{ElementID: churn.ElementID, ScriptSrc: chartJSURL}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, churn.MonthlyChurnChart()))

	out := buf.String()
	assert.Contains(t, out, `<canvas id="churnChart"></canvas>`)
	assert.Contains(t, out, `<script src="`+chartJSURL+`"></script>`)
	assert.Contains(t, out, `document.getElementById("churnChart").getContext('2d')`)
	assert.Contains(t, out, `"labels":["Jan","Feb","Mar","Apr","May","Jun","Jul","Aug","Sep","Oct","Nov","Dec"]`)
	assert.Equal(t, 1, strings.Count(out, "new Chart("))
	assert.Less(t, strings.Index(out, chartJSURL), strings.Index(out, "new Chart("), "library must load before the chart is constructed")
}

func TestChartJSRendererMissingElement(t *testing.T) {
	page, err := LoadHostPage(strings.NewReader(`<html><body><canvas id="other"></canvas></body></html>`))
	require.NoError(t, err)

	r := &ChartJSRenderer{Page: page, ElementID: churn.ElementID, ScriptSrc: chartJSURL}
	var buf bytes.Buffer
	err = r.Render(&buf, churn.MonthlyChurnChart())
	assert.True(t, errors.Is(err, ErrElementNotFound), "got %v", err)
	assert.Zero(t, buf.Len(), "nothing is drawn on failure")
}

func TestChartJSRendererInvalidConfig(t *testing.T) {
	cfg := churn.MonthlyChurnChart()
	cfg.Series.Values = append(cfg.Series.Values, 1)

	r := &ChartJSRenderer{ElementID: churn.ElementID}
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, cfg))
	assert.Zero(t, buf.Len())
}

package plot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/churn_chart/churn"
	"github.com/pivolan/churn_chart/domain/models"
)

func TestEChartsRenderer(t *testing.T) {
	r := &EChartsRenderer{ElementID: churn.ElementID, PageTitle: "Churn", Width: 900, Height: 500}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, churn.MonthlyChurnChart()))

	out := buf.String()
	assert.Contains(t, out, "churnChart")
	assert.Contains(t, out, "900px")
	assert.Contains(t, out, churn.SeriesLabel)
	assert.Contains(t, out, `"Nov"`)
}

func TestEChartsRendererSeriesStyle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&EChartsRenderer{ElementID: churn.ElementID}).Render(&buf, churn.MonthlyChurnChart()))
	out := buf.String()
	assert.Contains(t, out, `"smooth":true`)
	assert.Contains(t, out, `"areaStyle"`)
	assert.Contains(t, out, "rgba(231, 76, 60, 0.2)")
	assert.Contains(t, out, "#e74c3c")
}

func TestEChartsRendererUnfilled(t *testing.T) {
	cfg := churn.MonthlyChurnChart()
	cfg.Series.Filled = false
	cfg.Series.CurveTension = 0

	var buf bytes.Buffer
	require.NoError(t, (&EChartsRenderer{ElementID: churn.ElementID}).Render(&buf, cfg))
	assert.NotContains(t, buf.String(), `"areaStyle"`)
	assert.NotContains(t, buf.String(), `"smooth":true`)
}

func TestEChartsRendererErrors(t *testing.T) {
	var buf bytes.Buffer
	err := (&EChartsRenderer{}).Render(&buf, churn.MonthlyChurnChart())
	assert.True(t, errors.Is(err, ErrElementNotFound))

	for _, id := range []string{"churn-chart", "1chart", "churn.chart"} {
		err = (&EChartsRenderer{ElementID: id}).Render(&buf, churn.MonthlyChurnChart())
		assert.True(t, errors.Is(err, ErrInvalidElementID), "id %q: %v", id, err)
	}
	assert.Zero(t, buf.Len())

	cfg := churn.MonthlyChurnChart()
	cfg.Kind = models.ChartKind("pie")
	err = (&EChartsRenderer{ElementID: churn.ElementID}).Render(&buf, cfg)
	assert.True(t, errors.Is(err, models.ErrUnsupportedKind))
	assert.Zero(t, buf.Len())
}

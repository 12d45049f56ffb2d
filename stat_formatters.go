package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pivolan/churn_chart/churn"
	"github.com/pivolan/churn_chart/domain/models"
)

// GenerateChurnTable renders one row per month with the series value and a total footer.
func GenerateChurnTable(cfg models.ChartConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Month", cfg.Series.Label})

	total := 0
	for i, label := range cfg.CategoryLabels {
		value := cfg.Series.Values[i]
		total += value
		t.AppendRow(table.Row{label, value})
	}
	t.AppendFooter(table.Row{"Total", total})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.SetStyle(table.StyleDefault)

	return t.Render(), nil
}

// GenerateSummaryTable renders the key metrics as a two column table.
func GenerateSummaryTable(s *churn.Summary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total Customers", s.TotalCustomers},
		{"Customers Who Left", s.TotalChurned},
		{"Churn Rate", formatPercent(s.ChurnRate)},
		{"Average per Month", formatFloat(s.Average)},
		{"Median per Month", formatFloat(s.Median)},
		{"Min", s.Min},
		{"Max", s.Max},
		{"Peak Month", s.PeakLabel},
	})
	for _, q := range []float64{0.25, 0.75} {
		if v, ok := s.Quantiles[q]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("Quantile %.2f", q), formatFloat(v)})
		}
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// churnCaption is the short text sent along with the chart image.
func churnCaption(s *churn.Summary) string {
	return fmt.Sprintf("Customer churn by month\n"+
		"Customers who left: %d of %d (%s)\n"+
		"Peak: %s with %d, median %s per month",
		s.TotalChurned, s.TotalCustomers, formatPercent(s.ChurnRate),
		s.PeakLabel, s.Max, formatFloat(s.Median))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return formatFloat(v) + "%"
}

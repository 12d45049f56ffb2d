package churn

import "github.com/pivolan/churn_chart/domain/models"

// ElementID is the page element the churn chart is drawn into.
const ElementID = "churnChart"

const (
	SeriesLabel = "Number of Customers Who Left"
	XAxisTitle  = "Month"
	YAxisTitle  = "Number of Customers"
)

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var customersLeaving = [12]int{45, 60, 55, 70, 80, 65, 90, 85, 75, 95, 110, 90}

// MonthLabels returns the chronological category labels.
func MonthLabels() []string {
	out := make([]string, len(monthLabels))
	copy(out, monthLabels[:])
	return out
}

// MonthlyValues returns the number of customers who left in each month.
func MonthlyValues() []int {
	out := make([]int, len(customersLeaving))
	copy(out, customersLeaving[:])
	return out
}

// MonthlyChurnChart builds the line chart config for the monthly churn counts.
// Every call returns a fresh value.
func MonthlyChurnChart() models.ChartConfig {
	return models.ChartConfig{
		Kind:           models.ChartKindLine,
		CategoryLabels: MonthLabels(),
		Series: models.DataSeries{
			Label:        SeriesLabel,
			Values:       MonthlyValues(),
			LineColor:    "#e74c3c",
			FillColor:    "rgba(231, 76, 60, 0.2)",
			LineWidth:    2,
			CurveTension: 0.3,
			Filled:       true,
		},
		Options: models.DisplayOptions{
			Responsive: true,
			ShowLegend: true,
			X:          models.AxisOptions{Title: XAxisTitle},
			Y:          models.AxisOptions{Title: YAxisTitle, BeginAtZero: true},
		},
	}
}

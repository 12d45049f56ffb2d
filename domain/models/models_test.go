package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() ChartConfig {
	return ChartConfig{
		Kind:           ChartKindLine,
		CategoryLabels: []string{"Jan", "Feb", "Mar"},
		Series: DataSeries{
			Label:        "left",
			Values:       []int{3, 1, 2},
			CurveTension: 0.3,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ChartConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ChartConfig) {}},
		{name: "length mismatch", mutate: func(c *ChartConfig) { c.Series.Values = c.Series.Values[:2] }, wantErr: ErrLengthMismatch},
		{name: "bar kind", mutate: func(c *ChartConfig) { c.Kind = "bar" }, wantErr: ErrUnsupportedKind},
		{name: "negative tension", mutate: func(c *ChartConfig) { c.Series.CurveTension = -0.1 }, wantErr: ErrTensionOutOfRange},
		{name: "tension above one", mutate: func(c *ChartConfig) { c.Series.CurveTension = 1.5 }, wantErr: ErrTensionOutOfRange},
		{name: "NaN tension", mutate: func(c *ChartConfig) { c.Series.CurveTension = math.NaN() }, wantErr: ErrTensionOutOfRange},
		{name: "tension bounds", mutate: func(c *ChartConfig) { c.Series.CurveTension = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestSeriesHelpers(t *testing.T) {
	s := validConfig().Series
	assert.Equal(t, []float64{3, 1, 2}, s.FloatValues())
	assert.Equal(t, 3, s.MaxValue())
	assert.Equal(t, 0, DataSeries{}.MaxValue())
}

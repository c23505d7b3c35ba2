package forecast

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/model"
)

func TestFitTrendMonthlySales(t *testing.T) {
	t.Parallel()

	series := model.NewTimeSeries(120, 135, 115, 145, 160, 155)
	tr, err := FitTrend(series)
	require.NoError(t, err)

	// Σ(x-x̄)(y-ȳ) = 140, Σ(x-x̄)² = 17.5
	assert.InDelta(t, 8.0, tr.Slope, 1e-9)
	assert.InDelta(t, 110.333333, tr.Intercept, 1e-6)
	assert.InDelta(t, 0.665347, tr.RSquared, 1e-6)
	assert.Equal(t, 6, tr.N)
	assert.InDelta(t, 166.333333, tr.Forecast(7), 1e-6)
}

func TestFitTrendColinearRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		periods []float64
		slope   float64
		icpt    float64
	}{
		{"rising", []float64{1, 2, 3, 4}, 2.5, 10},
		{"falling", []float64{0, 5, 7}, -3, 40},
		{"uneven spacing", []float64{-2, 0.5, 3, 11}, 0.75, -1},
		{"flat", []float64{1, 2}, 0, 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			values := make([]float64, len(tt.periods))
			for i, x := range tt.periods {
				values[i] = tt.slope*x + tt.icpt
			}
			series, err := model.SeriesFromPairs(tt.periods, values)
			require.NoError(t, err)

			tr, err := FitTrend(series)
			require.NoError(t, err)
			for i, x := range tt.periods {
				assert.InDelta(t, values[i], tr.Forecast(x), 1e-9)
			}
			for _, r := range tr.Residuals(series) {
				assert.InDelta(t, 0, r, 1e-9)
			}
		})
	}
}

func TestFitTrendRSquaredBounds(t *testing.T) {
	t.Parallel()

	for _, vals := range [][]float64{
		{1, 9, 2, 8, 3, 7},
		{5, 4, 6, 5, 4, 6, 5},
		{100, 101},
		{-3, 12, -40, 7},
	} {
		tr, err := FitTrend(model.NewTimeSeries(vals...))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tr.RSquared, 0.0)
		assert.LessOrEqual(t, tr.RSquared, 1.0)
	}
}

func TestFitTrendConstantSeriesHasNaNRSquared(t *testing.T) {
	t.Parallel()

	tr, err := FitTrend(model.NewTimeSeries(7, 7, 7))
	require.NoError(t, err)
	assert.InDelta(t, 0, tr.Slope, 1e-12)
	assert.InDelta(t, 7, tr.Intercept, 1e-12)
	assert.True(t, math.IsNaN(tr.RSquared))
}

func TestFitTrendErrors(t *testing.T) {
	t.Parallel()

	_, err := FitTrend(model.TimeSeries{})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = FitTrend(model.NewTimeSeries(1))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = FitTrend(model.TimeSeries{Points: []model.Point{{Period: 3, Value: 1}, {Period: 2, Value: 4}}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = FitTrend(model.NewTimeSeries(1, math.Inf(1)))
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestFitTrendDegenerate(t *testing.T) {
	t.Parallel()

	// Validate already rejects duplicate periods, so feed the regression directly.
	_, err := fitPoints([]model.Point{{Period: 2, Value: 1}, {Period: 2, Value: 3}})
	assert.ErrorIs(t, err, model.ErrDegenerateInput)
}

func TestForecastNext(t *testing.T) {
	t.Parallel()

	tr := Trend{Slope: 2, Intercept: 1}
	pts := tr.ForecastNext(6, 3)
	require.Len(t, pts, 3)
	assert.Equal(t, []model.Point{{Period: 7, Value: 15}, {Period: 8, Value: 17}, {Period: 9, Value: 19}}, pts)
	assert.Nil(t, tr.ForecastNext(6, 0))
}

func TestComputeSeasonalCoefficients(t *testing.T) {
	t.Parallel()

	profile, err := ComputeSeasonalCoefficients(map[string][]float64{
		"Q1": {100, 120},
		"Q2": {150, 170},
		"Q3": {80, 100},
		"Q4": {170, 190},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, profile.Labels)
	assert.InDelta(t, 110.0/135, profile.Coefficients["Q1"], 1e-12)
	assert.InDelta(t, 160.0/135, profile.Coefficients["Q2"], 1e-12)
	assert.InDelta(t, 90.0/135, profile.Coefficients["Q3"], 1e-12)
	assert.InDelta(t, 180.0/135, profile.Coefficients["Q4"], 1e-12)
	assert.InDelta(t, 1.0, profile.Mean(), 1e-12)
}

func TestComputeSeasonalCoefficientsErrors(t *testing.T) {
	t.Parallel()

	_, err := ComputeSeasonalCoefficients(nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ComputeSeasonalCoefficients(map[string][]float64{"Q1": {1}, "Q2": {}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ComputeSeasonalCoefficients(map[string][]float64{"Q1": {-5}, "Q2": {2}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ComputeSeasonalCoefficients(map[string][]float64{"Q1": {math.NaN()}})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestComputeSeasonalCoefficientsFromSeries(t *testing.T) {
	t.Parallel()

	series := model.NewTimeSeries(100, 150, 80, 170, 120, 170, 100, 190)
	profile, err := ComputeSeasonalCoefficientsFromSeries(series, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, profile.Labels)
	assert.InDelta(t, 110.0/135, profile.Coefficients["S1"], 1e-12)
	assert.InDelta(t, 1.0, profile.Mean(), 1e-12)

	_, err = ComputeSeasonalCoefficientsFromSeries(series, 1)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestApplyAndClassifySeason(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 124.1, ApplySeasonality(100, 1.241), 1e-9)

	tests := []struct {
		coef float64
		want SeasonClass
	}{
		{0.80, SeasonLow},
		{0.96, SeasonNormal},
		{1.00, SeasonNormal},
		{1.04, SeasonNormal},
		{1.06, SeasonHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySeason(tt.coef), "coef %v", tt.coef)
	}
	assert.Equal(t, "1.241 (HIGH)", Describe(1.241))
}

func TestSeasonOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Q1", "Q2", "Q10"}, SeasonOrder([]string{"Q10", "Q2", "Q1"}))
	assert.Equal(t, []string{"1", "2", "11", "12"}, SeasonOrder([]string{"12", "2", "11", "1"}))
	assert.Equal(t, []string{"fall", "spring", "summer", "winter"}, SeasonOrder([]string{"winter", "summer", "spring", "fall"}))
}

func TestBuildSalesBudget(t *testing.T) {
	t.Parallel()

	history := model.NewTimeSeries(100, 150, 80, 170, 120, 170, 100, 190)
	b, err := BuildSalesBudget(history, 4, 4)
	require.NoError(t, err)
	require.Len(t, b.Lines, 4)

	var total float64
	for i, line := range b.Lines {
		assert.Equal(t, float64(9+i), line.Period)
		assert.Equal(t, SeasonLabel(i), line.Season)
		assert.InDelta(t, b.Trend.Forecast(line.Period), line.Trend, 1e-9)
		assert.InDelta(t, line.Trend*b.Profile.Coefficients[line.Season], line.Adjusted, 1e-9)
		total += line.Adjusted
	}
	assert.InDelta(t, total, b.Total, 1e-9)
	assert.Equal(t, SeasonHigh, b.Lines[3].Class)
	assert.Equal(t, SeasonLow, b.Lines[2].Class)

	_, err = BuildSalesBudget(history, 4, 0)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestTrendJSONEncodesUndefinedRSquaredAsNull(t *testing.T) {
	t.Parallel()

	tr, err := FitTrend(model.NewTimeSeries(100, 100, 100, 100))
	require.NoError(t, err)

	raw, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"r_squared":null`)
	assert.Contains(t, string(raw), `"intercept":100`)

	var back Trend
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, math.IsNaN(back.RSquared))
	assert.Equal(t, tr.Intercept, back.Intercept)

	fitted, err := FitTrend(model.NewTimeSeries(1, 2, 4))
	require.NoError(t, err)
	raw, err = json.Marshal(fitted)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.InDelta(t, fitted.RSquared, back.RSquared, 1e-12)

	// A budget carries the trend and must encode too.
	bud, err := BuildSalesBudget(model.NewTimeSeries(100, 100, 100, 100, 100, 100, 100, 100), 4, 4)
	require.NoError(t, err)
	_, err = json.Marshal(bud)
	assert.NoError(t, err)
}

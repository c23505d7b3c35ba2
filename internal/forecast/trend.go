package forecast

import (
	"encoding/json"
	"math"

	"budget-control/internal/model"
)

// Trend is a least-squares line y = Slope*x + Intercept fitted on a series.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	// RSquared is NaN when the observed values are constant (SS_tot = 0).
	RSquared float64 `json:"r_squared"`

	N     int     `json:"n"`
	XMean float64 `json:"x_mean"`
	YMean float64 `json:"y_mean"`
}

// FitTrend fits the least-squares line through series.
// It needs at least 2 points with distinct periods; equal periods yield a
// DegenerateInputError.
func FitTrend(series model.TimeSeries) (Trend, error) {
	if err := series.Validate(2); err != nil {
		return Trend{}, err
	}
	return fitPoints(series.Points)
}

func fitPoints(pts []model.Point) (Trend, error) {
	n := float64(len(pts))
	var sx, sy float64
	for _, p := range pts {
		sx += p.Period
		sy += p.Value
	}
	xMean := sx / n
	yMean := sy / n

	var num, den float64
	for _, p := range pts {
		dx := p.Period - xMean
		num += dx * (p.Value - yMean)
		den += dx * dx
	}
	if den == 0 {
		return Trend{}, &model.DegenerateInputError{Reason: "all periods are equal (zero variance in x)"}
	}

	t := Trend{
		Slope: num / den,
		N:     len(pts),
		XMean: xMean,
		YMean: yMean,
	}
	t.Intercept = yMean - t.Slope*xMean
	t.RSquared = t.rSquared(pts)
	return t, nil
}

func (t Trend) rSquared(pts []model.Point) float64 {
	var ssRes, ssTot float64
	for _, p := range pts {
		r := p.Value - t.Forecast(p.Period)
		ssRes += r * r
		d := p.Value - t.YMean
		ssTot += d * d
	}
	if ssTot == 0 {
		return math.NaN()
	}
	r2 := 1 - ssRes/ssTot
	// Rounding can push a perfect fit a hair outside [0,1].
	return math.Max(0, math.Min(1, r2))
}

// Forecast evaluates the line at period. Extrapolation is allowed.
func (t Trend) Forecast(period float64) float64 {
	return t.Slope*period + t.Intercept
}

// ForecastNext returns the k periods following lastPeriod, one period apart.
func (t Trend) ForecastNext(lastPeriod float64, k int) []model.Point {
	if k <= 0 {
		return nil
	}
	out := make([]model.Point, k)
	for i := 0; i < k; i++ {
		x := lastPeriod + float64(i+1)
		out[i] = model.Point{Period: x, Value: t.Forecast(x)}
	}
	return out
}

// Residuals returns observed minus fitted for every point of series.
func (t Trend) Residuals(series model.TimeSeries) []float64 {
	out := make([]float64, len(series.Points))
	for i, p := range series.Points {
		out[i] = p.Value - t.Forecast(p.Period)
	}
	return out
}

// MarshalJSON encodes an undefined R² as null; encoding/json rejects NaN.
func (t Trend) MarshalJSON() ([]byte, error) {
	type plain Trend
	return json.Marshal(struct {
		plain
		RSquared *float64 `json:"r_squared"`
	}{plain(t), model.Nullable(t.RSquared)})
}

func (t *Trend) UnmarshalJSON(b []byte) error {
	type plain Trend
	aux := struct {
		*plain
		RSquared *float64 `json:"r_squared"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.RSquared = model.FromNullable(aux.RSquared)
	return nil
}

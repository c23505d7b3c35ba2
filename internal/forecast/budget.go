package forecast

import (
	"budget-control/internal/model"
)

// BudgetLine is one forecast period of a sales budget.
type BudgetLine struct {
	Period      float64     `json:"period"`
	Season      string      `json:"season"`
	Trend       float64     `json:"trend"`
	Coefficient float64     `json:"coefficient"`
	Adjusted    float64     `json:"adjusted"`
	Class       SeasonClass `json:"class"`
}

// Budget is a seasonally adjusted trend forecast.
type Budget struct {
	Trend   Trend                 `json:"trend"`
	Profile model.SeasonalProfile `json:"profile"`
	Lines   []BudgetLine          `json:"lines"`
	Total   float64               `json:"total"`
}

// BuildSalesBudget fits a trend on history, derives seasonal coefficients
// with the given cycle length and projects horizon periods past the last
// observation. The season of a forecast period continues the position
// sequence of the history (observation i belongs to season i mod cycle).
func BuildSalesBudget(history model.TimeSeries, cycle, horizon int) (Budget, error) {
	if horizon < 1 {
		return Budget{}, model.Invalid("horizon", "must be >= 1, got %d", horizon)
	}
	trend, err := FitTrend(history)
	if err != nil {
		return Budget{}, err
	}
	profile, err := ComputeSeasonalCoefficientsFromSeries(history, cycle)
	if err != nil {
		return Budget{}, err
	}

	b := Budget{Trend: trend, Profile: profile, Lines: make([]BudgetLine, 0, horizon)}
	n := history.Len()
	for i, p := range trend.ForecastNext(history.Last().Period, horizon) {
		label := SeasonLabel((n + i) % cycle)
		coef := profile.Coefficients[label]
		adj := ApplySeasonality(p.Value, coef)
		b.Lines = append(b.Lines, BudgetLine{
			Period:      p.Period,
			Season:      label,
			Trend:       p.Value,
			Coefficient: coef,
			Adjusted:    adj,
			Class:       ClassifySeason(coef),
		})
		b.Total += adj
	}
	return b, nil
}

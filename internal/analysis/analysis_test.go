package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/investment"
	"budget-control/internal/model"
)

func TestRankByNPVPrefersScaleOverPercentage(t *testing.T) {
	t.Parallel()

	projects := []model.InvestmentProject{
		{Name: "kiosk", InitialOutlay: 10000, CashFlows: []float64{6000, 6000, 6000}, DiscountRate: 0.1},
		{Name: "loser", InitialOutlay: 50000, CashFlows: []float64{10000, 10000, 10000, 10000}, DiscountRate: 0.1},
		{Name: "plant", InitialOutlay: 1000000, CashFlows: []float64{400000, 400000, 400000, 400000}, DiscountRate: 0.1},
	}
	ranked, err := RankByNPV(projects, investment.Options{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "plant", ranked[0].Project.Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[0].IRRRank)
	assert.InDelta(t, 267946.18, ranked[0].NPV, 0.01)

	assert.Equal(t, "kiosk", ranked[1].Project.Name)
	assert.Equal(t, 1, ranked[1].IRRRank)
	assert.InDelta(t, 4921.11, ranked[1].NPV, 0.01)

	assert.Equal(t, "loser", ranked[2].Project.Name)
	assert.Nil(t, ranked[2].IRR)
	assert.Equal(t, 3, ranked[2].IRRRank)
	assert.False(t, ranked[2].Decision.Recommended)
}

func TestRankByNPVTiesByName(t *testing.T) {
	t.Parallel()

	p := model.InvestmentProject{InitialOutlay: 100, CashFlows: []float64{120}, DiscountRate: 0.1}
	b, a := p, p
	b.Name, a.Name = "b", "a"
	ranked, err := RankByNPV([]model.InvestmentProject{b, a}, investment.Options{})
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].Project.Name)
	assert.Equal(t, "b", ranked[1].Project.Name)
}

func TestRankByNPVErrors(t *testing.T) {
	t.Parallel()

	_, err := RankByNPV(nil, investment.Options{})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = RankByNPV([]model.InvestmentProject{{Name: "bad", InitialOutlay: -1, CashFlows: []float64{1}}}, investment.Options{})
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "project 1 (bad)")
}

func TestSummarizeSeries(t *testing.T) {
	t.Parallel()

	s := model.NewTimeSeries(10, 40, 20, 30)
	s.Key = "sales"
	sum, err := SummarizeSeries(s)
	require.NoError(t, err)

	assert.Equal(t, "sales", sum.Key)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 1.0, sum.FirstPeriod)
	assert.Equal(t, 4.0, sum.LastPeriod)
	assert.Equal(t, 10.0, sum.Min)
	assert.Equal(t, 40.0, sum.Max)
	assert.InDelta(t, 25, sum.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(125), sum.StdDev, 1e-12)
	assert.InDelta(t, 11.5, sum.P05, 1e-12)
	assert.InDelta(t, 38.5, sum.P95, 1e-12)
	assert.InDelta(t, 27, sum.SpreadP95P05, 1e-12)
	assert.InDelta(t, 2, sum.Growth, 1e-12)

	zero, err := SummarizeSeries(model.NewTimeSeries(0, 5))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(zero.Growth))

	_, err = SummarizeSeries(model.TimeSeries{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSeriesSummaryJSONEncodesUndefinedGrowthAsNull(t *testing.T) {
	t.Parallel()

	sum, err := SummarizeSeries(model.NewTimeSeries(0, 5))
	require.NoError(t, err)

	raw, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"growth":null`)

	var back SeriesSummary
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, math.IsNaN(back.Growth))
	assert.Equal(t, 2, back.Count)
	assert.Equal(t, 5.0, back.Max)
}

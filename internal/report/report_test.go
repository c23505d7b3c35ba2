package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/analysis"
	"budget-control/internal/forecast"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/production"
	"budget-control/internal/treasury"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.345, "12.35"},
		{999.994, "999.99"},
		{1000, "1,000.00"},
		{17607.754, "17,607.75"},
		{-1234567.891, "-1,234,567.89"},
		{100000, "100,000.00"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "%v", tt.in)
	}
	assert.Equal(t, "19.86%", Percent(0.198577))
	assert.Equal(t, "1.117", Quantity(1.11738, 3))
}

func TestAppraisalMarkdown(t *testing.T) {
	t.Parallel()

	a, err := investment.Appraise(model.InvestmentProject{
		Name:          "machine",
		InitialOutlay: 150000,
		CashFlows:     []float64{50000, 50000, 50000, 50000, 50000},
		DiscountRate:  0.15,
	}, investment.Options{Tolerance: 1e-9})
	require.NoError(t, err)

	md := AppraisalMarkdown(a)
	assert.Contains(t, md, "# Investment appraisal: machine")
	assert.Contains(t, md, "| NPV | 17,607.75 | > 0 | accept |")
	assert.Contains(t, md, "| IRR | 19.86% | > 15.00% | accept |")
	assert.Contains(t, md, "| Payback | 3.00 | <= 5 | accept |")
	assert.Contains(t, md, "**Project recommended.**")

	a, err = investment.Appraise(model.InvestmentProject{InitialOutlay: 100, CashFlows: []float64{10, 10}, DiscountRate: 0.05}, investment.Options{})
	require.NoError(t, err)
	md = AppraisalMarkdown(a)
	assert.Contains(t, md, "| IRR | n/a |")
	assert.Contains(t, md, "> IRR: no IRR root")
	assert.Contains(t, md, "| Payback | never |")
	assert.Contains(t, md, "not recommended")
}

func TestRankingMarkdown(t *testing.T) {
	t.Parallel()

	ranked, err := analysis.RankByNPV([]model.InvestmentProject{
		{Name: "kiosk", InitialOutlay: 10000, CashFlows: []float64{6000, 6000, 6000}, DiscountRate: 0.1},
		{Name: "plant", InitialOutlay: 1000000, CashFlows: []float64{400000, 400000, 400000, 400000}, DiscountRate: 0.1},
	}, investment.Options{})
	require.NoError(t, err)

	md := RankingMarkdown(ranked)
	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], "| 1 | plant | 267,946.18 |"), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "| 2 | kiosk | 4,921.11 |"), lines[5])
}

func TestTreasuryMarkdown(t *testing.T) {
	t.Parallel()

	res, err := treasury.New().Project(treasury.Config{
		Periods:     3,
		Revenue:     1000,
		BaseOutflow: 1000,
		Exceptional: []treasury.Expense{{Period: 2, Amount: 3000}},
		CreditLine:  2000,
	})
	require.NoError(t, err)

	md := TreasuryMarkdown(res)
	assert.Contains(t, md, "Status: **BREACH**")
	assert.Contains(t, md, "| 2 | 1,000.00 | 4,000.00 | -3,000.00 | -3,000.00 | -1,000.00 | 2,000.00 | yes |")
	assert.Contains(t, md, "## Warnings")
	assert.Contains(t, md, "period 2: LIQUIDITY_BREACH")
}

func TestEOQAndBudgetMarkdown(t *testing.T) {
	t.Parallel()

	in := model.OrderPolicyInput{AnnualDemand: 320000, OrderCost: 560, HoldingCostPerUnit: 10.8}
	r, err := inventory.SolveEOQ(in)
	require.NoError(t, err)
	md := EOQMarkdown(in, r)
	assert.Contains(t, md, "| Order quantity | 5760.66 |")
	assert.NotContains(t, md, "Max backorder")

	hist := model.NewTimeSeries(100, 130, 90, 110, 120, 150, 105, 125)
	bud, err := forecast.BuildSalesBudget(hist, 4, 4)
	require.NoError(t, err)
	md = BudgetMarkdown(bud)
	assert.Contains(t, md, "# Sales budget")
	assert.Contains(t, md, "| 9 | S1 |")
	assert.Contains(t, md, "**Total: "+Money(bud.Total)+"**")

	tr, err := forecast.FitTrend(hist)
	require.NoError(t, err)
	md = TrendMarkdown(tr, tr.ForecastNext(8, 2))
	assert.Contains(t, md, "over 8 points")
	assert.Contains(t, md, "| 10 |")
}

func TestABCMarkdown(t *testing.T) {
	t.Parallel()

	items, err := inventory.ClassifyABC([]inventory.Item{
		{Name: "x", AnnualValue: 800},
		{Name: "y", AnnualValue: 150},
		{Name: "z", AnnualValue: 50},
	}, inventory.DefaultThresholds())
	require.NoError(t, err)

	md := ABCMarkdown(items)
	assert.Contains(t, md, "| x | 800.00 | 80.00 | A |")
	assert.Contains(t, md, "| z | 50.00 | 100.00 | C |")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	html, err := RenderHTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>1</td>")

	page := Page("Q1 <draft>", html)
	assert.Contains(t, page, "<title>Q1 &lt;draft&gt;</title>")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
}

func TestSeasonalityMarkdown(t *testing.T) {
	t.Parallel()

	p, err := forecast.ComputeSeasonalCoefficients(map[string][]float64{
		"Q1": {100, 120}, "Q2": {130, 140}, "Q3": {90, 80}, "Q4": {100, 100},
	})
	require.NoError(t, err)
	md := SeasonalityMarkdown(p)
	assert.Contains(t, md, "| Q2 | 1.256 | HIGH |")
	assert.Contains(t, md, "| Q3 | 0.791 | LOW |")
	assert.Contains(t, md, "Mean coefficient 1.000")
}

func TestProductionMarkdown(t *testing.T) {
	t.Parallel()

	mix, err := production.OptimizeMix(production.DefaultMix())
	require.NoError(t, err)
	md := MixMarkdown(mix)
	assert.Contains(t, md, "| B | 8000.00 | 720,000.00 | yes |")
	assert.Contains(t, md, "| machining | 13000.00 | 13000.00 | 0.00 | yes |")
	assert.Contains(t, md, "**Total margin: 775,000.00**")

	capRes, err := production.SimulateCapacity(production.DefaultCapacity())
	require.NoError(t, err)
	md = CapacityMarkdown(capRes)
	assert.Contains(t, md, "| Theoretical capacity | 119000 |")
	assert.Contains(t, md, "| Unit cost | 206.00 |")
	assert.Contains(t, md, "not profitable")

	in := production.DefaultSchedule()
	in.SafetyStock = 900
	sched, err := production.SimulateSchedule(in)
	require.NoError(t, err)
	md = ScheduleMarkdown(sched)
	assert.Contains(t, md, "| 6 | 0 | 84 | 1016 |")
	assert.Contains(t, md, "on day 14")
}

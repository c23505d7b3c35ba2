package report

import (
	"fmt"
	"strings"

	"budget-control/internal/analysis"
	"budget-control/internal/forecast"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/treasury"
)

func TrendMarkdown(t forecast.Trend, forecasts []model.Point) string {
	var b strings.Builder
	b.WriteString("# Sales trend\n\n")
	fmt.Fprintf(&b, "y = %s x + %s, R² = %s over %d points\n\n",
		Quantity(t.Slope, 4), Quantity(t.Intercept, 4), Quantity(t.RSquared, 4), t.N)
	if len(forecasts) > 0 {
		b.WriteString("| Period | Forecast |\n|---:|---:|\n")
		for _, p := range forecasts {
			fmt.Fprintf(&b, "| %s | %s |\n", Quantity(p.Period, 0), Money(p.Value))
		}
	}
	return b.String()
}

func BudgetMarkdown(bud forecast.Budget) string {
	var b strings.Builder
	b.WriteString("# Sales budget\n\n")
	fmt.Fprintf(&b, "Trend y = %s x + %s (R² = %s)\n\n",
		Quantity(bud.Trend.Slope, 4), Quantity(bud.Trend.Intercept, 4), Quantity(bud.Trend.RSquared, 4))
	b.WriteString("| Period | Season | Trend | Coefficient | Budget | Season type |\n|---:|---|---:|---:|---:|---|\n")
	for _, l := range bud.Lines {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			Quantity(l.Period, 0), l.Season, Money(l.Trend), Quantity(l.Coefficient, 3), Money(l.Adjusted), l.Class)
	}
	fmt.Fprintf(&b, "\n**Total: %s**\n", Money(bud.Total))
	return b.String()
}

func EOQMarkdown(in model.OrderPolicyInput, r inventory.EOQResult) string {
	var b strings.Builder
	b.WriteString("# Economic order quantity\n\n")
	b.WriteString("| Item | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Annual demand | %s |\n", Quantity(in.AnnualDemand, 0))
	fmt.Fprintf(&b, "| Order cost | %s |\n", Money(in.OrderCost))
	fmt.Fprintf(&b, "| Holding cost per unit | %s |\n", Money(in.HoldingCostPerUnit))
	fmt.Fprintf(&b, "| Order quantity | %s |\n", Quantity(r.OrderQty, 2))
	fmt.Fprintf(&b, "| Orders per year | %s |\n", Quantity(r.OrdersPerYear, 2))
	fmt.Fprintf(&b, "| Cycle length (days) | %s |\n", Quantity(r.CycleLengthDays, 2))
	if r.Backorder {
		fmt.Fprintf(&b, "| Max backorder | %s |\n", Quantity(r.MaxBackorder, 2))
		fmt.Fprintf(&b, "| Shortage cost | %s |\n", Money(r.ShortageCost))
	}
	fmt.Fprintf(&b, "| Ordering cost | %s |\n", Money(r.OrderingCost))
	fmt.Fprintf(&b, "| Holding cost | %s |\n", Money(r.HoldingCost))
	fmt.Fprintf(&b, "| **Total cost** | **%s** |\n", Money(r.TotalCost))
	return b.String()
}

func ABCMarkdown(items []inventory.Classified) string {
	var b strings.Builder
	b.WriteString("# ABC analysis\n\n")
	b.WriteString("| Class | Items | % items | Value | % value |\n|---|---:|---:|---:|---:|\n")
	for _, s := range inventory.SummarizeABC(items) {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			s.Class, s.Count, Quantity(s.ItemsPct, 1), Money(s.Value), Quantity(s.ValuePct, 1))
	}
	b.WriteString("\n| Item | Annual value | Cumulative % | Class |\n|---|---:|---:|---|\n")
	for _, c := range items {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Name, Money(c.AnnualValue), Quantity(c.CumulativePct, 2), c.Class)
	}
	return b.String()
}

func AppraisalMarkdown(a investment.Appraisal) string {
	var b strings.Builder
	name := a.Project.Name
	if name == "" {
		name = "project"
	}
	fmt.Fprintf(&b, "# Investment appraisal: %s\n\n", name)
	fmt.Fprintf(&b, "Outlay %s, %d periods, discount rate %s\n\n",
		Money(a.Project.InitialOutlay), a.Project.Life(), Percent(a.Project.DiscountRate))

	b.WriteString("| Criterion | Value | Threshold | Decision |\n|---|---:|---|---|\n")
	fmt.Fprintf(&b, "| NPV | %s | > 0 | %s |\n", Money(a.NPV), yesNo(a.Decision.NPVAcceptable))
	irr := "n/a"
	if a.IRR != nil {
		irr = Percent(*a.IRR)
	}
	fmt.Fprintf(&b, "| IRR | %s | > %s | %s |\n", irr, Percent(a.Project.DiscountRate), yesNo(a.Decision.IRRAcceptable))
	fmt.Fprintf(&b, "| Payback | %s | <= %d | %s |\n", a.Payback, a.Project.Life(), yesNo(a.Decision.PaybackWithinLife))
	pi := "n/a"
	if a.ProfitabilityIndex != nil {
		pi = Quantity(*a.ProfitabilityIndex, 3)
	}
	fmt.Fprintf(&b, "| Profitability index | %s | > 1 | %s |\n", pi, yesNo(a.Decision.PIAcceptable))

	if a.IRRError != "" {
		fmt.Fprintf(&b, "\n> IRR: %s\n", a.IRRError)
	}
	verdict := "not recommended"
	if a.Decision.Recommended {
		verdict = "recommended"
	}
	fmt.Fprintf(&b, "\n**Project %s.**\n", verdict)
	return b.String()
}

func RankingMarkdown(ranked []analysis.RankedProject) string {
	var b strings.Builder
	b.WriteString("# Project ranking by NPV\n\n")
	b.WriteString("| Rank | Project | NPV | IRR | IRR rank | PI | Recommended |\n|---:|---|---:|---:|---:|---:|---|\n")
	for _, r := range ranked {
		irr, pi := "n/a", "n/a"
		if r.IRR != nil {
			irr = Percent(*r.IRR)
		}
		if r.ProfitabilityIndex != nil {
			pi = Quantity(*r.ProfitabilityIndex, 3)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s | %t |\n",
			r.Rank, r.Project.Name, Money(r.NPV), irr, r.IRRRank, pi, r.Decision.Recommended)
	}
	return b.String()
}

func TreasuryMarkdown(res *treasury.Result) string {
	var b strings.Builder
	b.WriteString("# Cash-flow projection\n\n")
	fmt.Fprintf(&b, "Status: **%s**. Final balance %s, minimum %s, peak credit drawn %s.\n\n",
		res.Status, Money(res.FinalBalance), Money(res.MinBalance), Money(res.PeakCredit))

	b.WriteString("| Period | Inflow | Outflow | Net | Balance | Reported | Credit | Breach |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|---|\n")
	for _, r := range res.Ledger {
		breach := ""
		if r.Breach {
			breach = "yes"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Period, Money(r.Inflow), Money(r.Outflow), Money(r.NetFlow),
			Money(r.RunningBalance), Money(r.ReportedBalance), Money(r.CreditDrawn), breach)
	}
	if len(res.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- period %d: %s, balance %s exceeds credit line %s by %s\n",
				w.Period, w.Kind, Money(w.Balance), Money(w.CreditLine), Money(w.Shortfall))
		}
	}
	return b.String()
}

func SeasonalityMarkdown(p model.SeasonalProfile) string {
	var b strings.Builder
	b.WriteString("# Seasonal coefficients\n\n")
	b.WriteString("| Season | Coefficient | Season type |\n|---|---:|---|\n")
	for _, label := range p.Labels {
		coef := p.Coefficients[label]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, Quantity(coef, 3), forecast.ClassifySeason(coef))
	}
	fmt.Fprintf(&b, "\nMean coefficient %s\n", Quantity(p.Mean(), 3))
	return b.String()
}

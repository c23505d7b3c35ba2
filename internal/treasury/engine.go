package treasury

import (
	"fmt"
	"math"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Project runs the period-by-period cash ledger.
//
// inflow_t sums revenue_{t-d} * fraction over the collection buckets, where d
// is the bucket delay in periods; revenue before period 1 contributes nothing.
// Outflows follow the payment buckets the same way, and exceptional expenses
// are paid in their period. A balance below the credit line produces a
// LIQUIDITY_BREACH warning and the projection carries on.
func (e *Engine) Project(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("treasury config: %w", err)
	}

	collect := cfg.offsets(cfg.CollectionBuckets)
	pay := cfg.offsets(cfg.PaymentBuckets)
	exceptional := make(map[int]float64, len(cfg.Exceptional))
	for _, x := range cfg.Exceptional {
		exceptional[x.Period] += x.Amount
	}

	res := &Result{
		Ledger:     make([]LedgerEntry, 0, cfg.Periods),
		Warnings:   []Warning{},
		MinBalance: math.Inf(1),
		MaxBalance: math.Inf(-1),
	}
	running := cfg.InitialBalance

	for t := 1; t <= cfg.Periods; t++ {
		in := settled(collect, t, cfg.revenueAt)
		out := settled(pay, t, cfg.outflowAt)
		exc := exceptional[t]

		net := in - out - exc
		running += net

		row := LedgerEntry{
			Period:          t,
			Inflow:          in,
			Outflow:         out + exc,
			Exceptional:     exc,
			NetFlow:         net,
			RunningBalance:  running,
			ReportedBalance: running,
		}
		if running < 0 {
			overdraft := -running
			if overdraft <= cfg.CreditLine {
				row.ReportedBalance = 0
				row.CreditDrawn = overdraft
			} else {
				row.CreditDrawn = cfg.CreditLine
				row.ReportedBalance = running + cfg.CreditLine
				row.Breach = true
				res.Warnings = append(res.Warnings, Warning{
					Kind:       WarningLiquidityBreach,
					Period:     t,
					Balance:    running,
					CreditLine: cfg.CreditLine,
					Shortfall:  overdraft - cfg.CreditLine,
				})
			}
		}
		res.Ledger = append(res.Ledger, row)

		res.TotalInflow += in
		res.TotalOutflow += out + exc
		res.MinBalance = math.Min(res.MinBalance, running)
		res.MaxBalance = math.Max(res.MaxBalance, running)
		res.PeakCredit = math.Max(res.PeakCredit, row.CreditDrawn)
	}

	res.FinalBalance = running
	res.AverageNetFlow = (res.TotalInflow - res.TotalOutflow) / float64(cfg.Periods)
	res.Status = classify(res, cfg.TensionThreshold)
	return res, nil
}

// settled returns what falls due in period t given per-offset fractions of
// the amounts originated in earlier periods.
func settled(fractions map[int]float64, t int, amountAt func(int) float64) float64 {
	total := 0.0
	for _, d := range sortedKeys(fractions) {
		src := t - d
		if src < 1 {
			continue
		}
		total += amountAt(src) * fractions[d]
	}
	return total
}

func classify(res *Result, threshold float64) Status {
	switch {
	case len(res.Warnings) > 0:
		return StatusBreach
	case res.MinBalance < 0:
		return StatusOverdraft
	case res.MinBalance < threshold:
		return StatusTight
	default:
		return StatusHealthy
	}
}

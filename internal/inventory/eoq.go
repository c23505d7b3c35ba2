package inventory

import (
	"math"

	"budget-control/internal/model"
)

// DaysPerYear is the commercial year used for cycle lengths.
const DaysPerYear = 360

// EOQResult is the Wilson lot size and the annual costs it implies.
type EOQResult struct {
	OrderQty        float64 `json:"order_qty"`
	OrdersPerYear   float64 `json:"orders_per_year"`
	CycleLengthDays float64 `json:"cycle_length_days"`

	OrderingCost float64 `json:"ordering_cost"`
	HoldingCost  float64 `json:"holding_cost"`
	ShortageCost float64 `json:"shortage_cost"`
	TotalCost    float64 `json:"total_cost"`

	// Backorder is true when planned shortages were priced in.
	Backorder    bool    `json:"backorder"`
	MaxBackorder float64 `json:"max_backorder"`
}

// SolveEOQ computes Q* = sqrt(2DS/H). With a backorder cost π the quantity is
// scaled by sqrt((H+π)/π) and the order cycle is recomputed from the scaled
// quantity.
func SolveEOQ(in model.OrderPolicyInput) (EOQResult, error) {
	if err := in.Validate(); err != nil {
		return EOQResult{}, err
	}
	d, s, h := in.AnnualDemand, in.OrderCost, in.HoldingCostPerUnit

	q := math.Sqrt(2 * d * s / h)
	res := EOQResult{}
	if in.BackorderEnabled() {
		pi := *in.BackorderCost
		q *= math.Sqrt((h + pi) / pi)
		b := q * h / (h + pi)
		res.Backorder = true
		res.MaxBackorder = b
		res.HoldingCost = (q - b) * (q - b) / (2 * q) * h
		res.ShortageCost = b * b / (2 * q) * pi
	} else {
		res.HoldingCost = q / 2 * h
	}

	res.OrderQty = q
	res.OrdersPerYear = d / q
	res.CycleLengthDays = DaysPerYear / res.OrdersPerYear
	res.OrderingCost = d / q * s
	res.TotalCost = res.OrderingCost + res.HoldingCost + res.ShortageCost
	return res, nil
}

// TotalCost is the annual ordering plus holding cost of ordering q units at a
// time, without shortages: D/Q*S + Q/2*H.
func TotalCost(d, s, h, q float64) float64 {
	return d/q*s + q/2*h
}

package model

import "math"

// SeasonalProfile maps a season label (e.g. "Q1".."Q4") to its coefficient.
// Labels keeps the cycle order for display.
type SeasonalProfile struct {
	Labels       []string           `json:"labels"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// Coefficient returns the coefficient for label, and whether it exists.
func (p SeasonalProfile) Coefficient(label string) (float64, bool) {
	c, ok := p.Coefficients[label]
	return c, ok
}

// Mean is the arithmetic mean of all coefficients (1.0 for a balanced cycle).
func (p SeasonalProfile) Mean() float64 {
	if len(p.Coefficients) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, c := range p.Coefficients {
		sum += c
	}
	return sum / float64(len(p.Coefficients))
}

// OrderPolicyInput parametrizes the Wilson lot-size model.
// Units:
// - AnnualDemand: units/year
// - OrderCost: currency per order
// - HoldingCostPerUnit: currency per unit per year
// - BackorderCost: currency per unit short per year (nil disables planned backorders)
type OrderPolicyInput struct {
	AnnualDemand       float64  `json:"annual_demand" yaml:"annual_demand"`
	OrderCost          float64  `json:"order_cost" yaml:"order_cost"`
	HoldingCostPerUnit float64  `json:"holding_cost_per_unit" yaml:"holding_cost_per_unit"`
	BackorderCost      *float64 `json:"backorder_cost,omitempty" yaml:"backorder_cost,omitempty"`
}

func (in OrderPolicyInput) BackorderEnabled() bool { return in.BackorderCost != nil }

func (in OrderPolicyInput) Validate() error {
	if err := positive("annual_demand", in.AnnualDemand); err != nil {
		return err
	}
	if err := positive("order_cost", in.OrderCost); err != nil {
		return err
	}
	if err := positive("holding_cost_per_unit", in.HoldingCostPerUnit); err != nil {
		return err
	}
	if in.BackorderCost != nil {
		if err := positive("backorder_cost", *in.BackorderCost); err != nil {
			return err
		}
	}
	return nil
}

// InvestmentProject is an outlay at period 0 followed by one cash flow per period.
// DiscountRate is a fraction (0.15 for 15%).
type InvestmentProject struct {
	Name          string    `json:"name,omitempty" yaml:"name,omitempty"`
	InitialOutlay float64   `json:"initial_outlay" yaml:"initial_outlay"`
	CashFlows     []float64 `json:"cash_flows" yaml:"cash_flows"`
	DiscountRate  float64   `json:"discount_rate" yaml:"discount_rate"`
}

// Life is the number of periods covered by the cash flows.
func (p InvestmentProject) Life() int { return len(p.CashFlows) }

func (p InvestmentProject) Validate() error {
	if !IsFinite(p.InitialOutlay) {
		return Invalid("initial_outlay", "must be finite")
	}
	if p.InitialOutlay < 0 {
		return &InvalidParameterError{Name: "initial_outlay", Value: p.InitialOutlay, Want: ">= 0"}
	}
	if len(p.CashFlows) == 0 {
		return Invalid("cash_flows", "at least one cash flow is required")
	}
	for i, cf := range p.CashFlows {
		if !IsFinite(cf) {
			return Invalid("cash_flows", "cash flow %d is not finite", i+1)
		}
	}
	if !IsFinite(p.DiscountRate) || p.DiscountRate <= -1 {
		return &InvalidParameterError{Name: "discount_rate", Value: p.DiscountRate, Want: "> -1 (a fraction, e.g. 0.15)"}
	}
	return nil
}

func positive(name string, v float64) error {
	if !IsFinite(v) || v <= 0 {
		return &InvalidParameterError{Name: name, Value: v}
	}
	return nil
}

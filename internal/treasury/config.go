package treasury

import (
	"fmt"
	"math"
	"sort"

	"budget-control/internal/model"
)

const (
	DefaultPeriodDays = 30
	fractionTolerance = 1e-9
)

// Bucket is the share of a period's amount settled DelayDays later.
type Bucket struct {
	DelayDays int     `json:"delay_days" yaml:"delay_days"`
	Fraction  float64 `json:"fraction" yaml:"fraction"`
}

// Expense is a one-off payment made in Period (1-based).
type Expense struct {
	Period int     `json:"period" yaml:"period"`
	Amount float64 `json:"amount" yaml:"amount"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Config describes a cash-flow projection.
// Units:
// - amounts in currency per period
// - delays in days, converted to whole periods of PeriodDays
type Config struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	Periods        int     `json:"periods" yaml:"periods"`
	PeriodDays     int     `json:"period_days,omitempty" yaml:"period_days,omitempty"`

	// Revenue is invoiced every period unless RevenueSchedule is set.
	Revenue         float64   `json:"revenue" yaml:"revenue"`
	RevenueSchedule []float64 `json:"revenue_schedule,omitempty" yaml:"revenue_schedule,omitempty"`

	// BaseOutflow is owed every period unless OutflowSchedule is set.
	BaseOutflow     float64   `json:"base_outflow" yaml:"base_outflow"`
	OutflowSchedule []float64 `json:"outflow_schedule,omitempty" yaml:"outflow_schedule,omitempty"`

	// CollectionBuckets spread revenue over later periods; empty means cash on invoice.
	CollectionBuckets []Bucket `json:"collection_buckets,omitempty" yaml:"collection_buckets,omitempty"`
	// PaymentBuckets spread outflows the same way; empty means paid when owed.
	PaymentBuckets []Bucket `json:"payment_buckets,omitempty" yaml:"payment_buckets,omitempty"`

	Exceptional []Expense `json:"exceptional,omitempty" yaml:"exceptional,omitempty"`

	CreditLine float64 `json:"credit_line" yaml:"credit_line"`
	// TensionThreshold marks a positive balance as TIGHT when it falls below it.
	TensionThreshold float64 `json:"tension_threshold" yaml:"tension_threshold"`
}

func (c *Config) periodDays() int {
	if c.PeriodDays <= 0 {
		return DefaultPeriodDays
	}
	return c.PeriodDays
}

// offset converts a delay in days to whole periods, rounding to nearest.
func (c *Config) offset(delayDays int) int {
	return int(math.Round(float64(delayDays) / float64(c.periodDays())))
}

func (c *Config) revenueAt(t int) float64 {
	if len(c.RevenueSchedule) > 0 {
		return c.RevenueSchedule[t-1]
	}
	return c.Revenue
}

func (c *Config) outflowAt(t int) float64 {
	if len(c.OutflowSchedule) > 0 {
		return c.OutflowSchedule[t-1]
	}
	return c.BaseOutflow
}

func (c *Config) Validate() error {
	if c.Periods < 1 {
		return model.Invalid("periods", "must be >= 1, got %d", c.Periods)
	}
	if c.PeriodDays < 0 {
		return model.Invalid("period_days", "must be >= 0, got %d", c.PeriodDays)
	}
	if !model.IsFinite(c.InitialBalance) {
		return model.Invalid("initial_balance", "must be finite")
	}
	if err := nonNegative("revenue", c.Revenue); err != nil {
		return err
	}
	if err := nonNegative("base_outflow", c.BaseOutflow); err != nil {
		return err
	}
	if err := c.checkSchedule("revenue_schedule", c.RevenueSchedule); err != nil {
		return err
	}
	if err := c.checkSchedule("outflow_schedule", c.OutflowSchedule); err != nil {
		return err
	}
	if err := checkBuckets("collection_buckets", c.CollectionBuckets); err != nil {
		return err
	}
	if err := checkBuckets("payment_buckets", c.PaymentBuckets); err != nil {
		return err
	}
	for i, e := range c.Exceptional {
		if e.Period < 1 || e.Period > c.Periods {
			return model.Invalid("exceptional", "expense %d: period %d outside [1, %d]", i+1, e.Period, c.Periods)
		}
		if err := nonNegative(fmt.Sprintf("exceptional[%d].amount", i), e.Amount); err != nil {
			return err
		}
	}
	if err := nonNegative("credit_line", c.CreditLine); err != nil {
		return err
	}
	if !model.IsFinite(c.TensionThreshold) {
		return model.Invalid("tension_threshold", "must be finite")
	}
	return nil
}

func (c *Config) checkSchedule(field string, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	if len(s) != c.Periods {
		return model.Invalid(field, "has %d entries for %d periods", len(s), c.Periods)
	}
	for i, v := range s {
		if !model.IsFinite(v) || v < 0 {
			return model.Invalid(field, "entry %d must be finite and >= 0, got %v", i+1, v)
		}
	}
	return nil
}

func checkBuckets(field string, buckets []Bucket) error {
	if len(buckets) == 0 {
		return nil
	}
	sum := 0.0
	for i, b := range buckets {
		if b.DelayDays < 0 {
			return model.Invalid(field, "bucket %d: delay must be >= 0, got %d", i+1, b.DelayDays)
		}
		if !model.IsFinite(b.Fraction) || b.Fraction < 0 || b.Fraction > 1 {
			return model.Invalid(field, "bucket %d: fraction must be in [0,1], got %v", i+1, b.Fraction)
		}
		sum += b.Fraction
	}
	if math.Abs(sum-1) > fractionTolerance {
		return model.Invalid(field, "fractions sum to %v, want 1", sum)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !model.IsFinite(v) || v < 0 {
		return &model.InvalidParameterError{Name: field, Value: v, Want: ">= 0"}
	}
	return nil
}

// CollectionPreset returns the customer payment profile for an average
// credit term in days: cash, 30 days, or 60 days and beyond.
func CollectionPreset(days int) []Bucket {
	switch {
	case days <= 0:
		return []Bucket{{DelayDays: 0, Fraction: 1}}
	case days < 60:
		return []Bucket{{DelayDays: 0, Fraction: 0.7}, {DelayDays: 30, Fraction: 0.3}}
	default:
		return []Bucket{{DelayDays: 0, Fraction: 0.5}, {DelayDays: 30, Fraction: 0.3}, {DelayDays: 60, Fraction: 0.2}}
	}
}

// offsets merges buckets that land on the same period offset.
func (c *Config) offsets(buckets []Bucket) map[int]float64 {
	if len(buckets) == 0 {
		return map[int]float64{0: 1}
	}
	out := make(map[int]float64, len(buckets))
	for _, b := range buckets {
		out[c.offset(b.DelayDays)] += b.Fraction
	}
	return out
}

func sortedKeys(m map[int]float64) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

package production

import (
	"budget-control/internal/model"
)

// DefaultWeeksPerMonth converts weekly hours to a month.
const DefaultWeeksPerMonth = 4

// CapacityInput describes a month of workshop resources and the volume planned
// on them.
type CapacityInput struct {
	Workers       float64 `json:"workers" yaml:"workers"`
	HoursPerWeek  float64 `json:"hours_per_week" yaml:"hours_per_week"`
	WeeksPerMonth float64 `json:"weeks_per_month,omitempty" yaml:"weeks_per_month,omitempty"`
	Machines      float64 `json:"machines" yaml:"machines"`
	// Efficiency is the machine yield in percent (0, 100].
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`

	LabourRate   float64 `json:"labour_rate" yaml:"labour_rate"`
	MachineRate  float64 `json:"machine_rate" yaml:"machine_rate"`
	MaterialCost float64 `json:"material_cost" yaml:"material_cost"`

	PlannedUnits float64 `json:"planned_units" yaml:"planned_units"`
	UnitPrice    float64 `json:"unit_price,omitempty" yaml:"unit_price,omitempty"`
}

type CapacityResult struct {
	AvailableHours      float64 `json:"available_hours"`
	TheoreticalCapacity float64 `json:"theoretical_capacity"`

	LabourCost   float64 `json:"labour_cost"`
	MachineCost  float64 `json:"machine_cost"`
	FixedCost    float64 `json:"fixed_cost"`
	VariableCost float64 `json:"variable_cost"`
	TotalCost    float64 `json:"total_cost"`
	UnitCost     float64 `json:"unit_cost"`

	UnitMargin  float64 `json:"unit_margin"`
	TotalMargin float64 `json:"total_margin"`
	Profitable  bool    `json:"profitable"`
	// WithinCapacity is false when the planned volume exceeds the theoretical capacity.
	WithinCapacity bool `json:"within_capacity"`
}

func DefaultCapacity() CapacityInput {
	return CapacityInput{
		Workers:       50,
		HoursPerWeek:  35,
		WeeksPerMonth: DefaultWeeksPerMonth,
		Machines:      20,
		Efficiency:    85,
		LabourRate:    25,
		MachineRate:   15,
		MaterialCost:  10,
		PlannedUnits:  10000,
		UnitPrice:     25,
	}
}

func (in CapacityInput) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"workers", in.Workers},
		{"hours_per_week", in.HoursPerWeek},
		{"machines", in.Machines},
		{"labour_rate", in.LabourRate},
		{"machine_rate", in.MachineRate},
		{"material_cost", in.MaterialCost},
		{"unit_price", in.UnitPrice},
		{"weeks_per_month", in.WeeksPerMonth},
	} {
		if !model.IsFinite(f.v) || f.v < 0 {
			return model.Invalid(f.name, "must be finite and >= 0, got %g", f.v)
		}
	}
	if !model.IsFinite(in.Efficiency) || in.Efficiency <= 0 || in.Efficiency > 100 {
		return model.Invalid("efficiency", "must be in (0, 100], got %g", in.Efficiency)
	}
	if !model.IsFinite(in.PlannedUnits) || in.PlannedUnits <= 0 {
		return &model.InvalidParameterError{Name: "planned_units", Value: in.PlannedUnits}
	}
	return nil
}

// SimulateCapacity costs a month of production. Labour is paid on every
// available hour and machines on every hour of theoretical capacity, so both
// are fixed; material is the only variable cost.
func SimulateCapacity(in CapacityInput) (CapacityResult, error) {
	if err := in.Validate(); err != nil {
		return CapacityResult{}, err
	}
	weeks := in.WeeksPerMonth
	if weeks == 0 {
		weeks = DefaultWeeksPerMonth
	}

	var r CapacityResult
	r.AvailableHours = in.Workers * in.HoursPerWeek * weeks
	r.TheoreticalCapacity = in.Machines * r.AvailableHours * in.Efficiency / 100
	r.LabourCost = r.AvailableHours * in.LabourRate
	r.MachineCost = r.TheoreticalCapacity * in.MachineRate
	r.FixedCost = r.LabourCost + r.MachineCost
	r.VariableCost = in.PlannedUnits * in.MaterialCost
	r.TotalCost = r.FixedCost + r.VariableCost
	r.UnitCost = r.TotalCost / in.PlannedUnits
	r.WithinCapacity = in.PlannedUnits <= r.TheoreticalCapacity
	if in.UnitPrice > 0 {
		r.UnitMargin = in.UnitPrice - r.UnitCost
		r.TotalMargin = r.UnitMargin * in.PlannedUnits
		r.Profitable = r.UnitMargin >= 0
	}
	return r, nil
}

// Requirement is the volume to produce so that closing stock hits target:
// sales + target - opening, floored at zero.
type Requirement struct {
	Sales        float64 `json:"sales" yaml:"sales"`
	OpeningStock float64 `json:"opening_stock" yaml:"opening_stock"`
	TargetStock  float64 `json:"target_stock" yaml:"target_stock"`
	UnitCost     float64 `json:"unit_cost,omitempty" yaml:"unit_cost,omitempty"`
}

type RequirementResult struct {
	Units float64 `json:"units"`
	Cost  float64 `json:"cost"`
}

func (rq Requirement) Solve() (RequirementResult, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"sales", rq.Sales},
		{"opening_stock", rq.OpeningStock},
		{"target_stock", rq.TargetStock},
		{"unit_cost", rq.UnitCost},
	} {
		if !model.IsFinite(f.v) || f.v < 0 {
			return RequirementResult{}, model.Invalid(f.name, "must be finite and >= 0, got %g", f.v)
		}
	}
	units := rq.Sales + rq.TargetStock - rq.OpeningStock
	if units < 0 {
		units = 0
	}
	return RequirementResult{Units: units, Cost: units * rq.UnitCost}, nil
}

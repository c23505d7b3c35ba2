package production

import "budget-control/internal/model"

const (
	DefaultScheduleDays = 30
	// DefaultWeekendSales is the share of daily sales still made on weekends.
	DefaultWeekendSales = 0.3
)

// ScheduleInput is a daily stock simulation. Days are numbered from 1 and
// day%7 of 6 or 0 is a weekend: nothing is produced and sales drop to
// WeekendSales of a weekday.
type ScheduleInput struct {
	OpeningStock    float64  `json:"opening_stock" yaml:"opening_stock"`
	DailyProduction float64  `json:"daily_production" yaml:"daily_production"`
	DailySales      float64  `json:"daily_sales" yaml:"daily_sales"`
	SafetyStock     float64  `json:"safety_stock" yaml:"safety_stock"`
	Days            int      `json:"days,omitempty" yaml:"days,omitempty"`
	WeekendSales    *float64 `json:"weekend_sales,omitempty" yaml:"weekend_sales,omitempty"`
}

type ScheduleDay struct {
	Day        int     `json:"day"`
	Production float64 `json:"production"`
	Sales      float64 `json:"sales"`
	Stock      float64 `json:"stock"`
}

type ScheduleResult struct {
	Days       []ScheduleDay `json:"days"`
	FinalStock float64       `json:"final_stock"`
	MinStock   float64       `json:"min_stock"`
	// FirstBelowSafety is the first day stock fell under the safety stock, 0 if never.
	FirstBelowSafety int  `json:"first_below_safety"`
	FinalBelowSafety bool `json:"final_below_safety"`
}

func DefaultSchedule() ScheduleInput {
	return ScheduleInput{
		OpeningStock:    1000,
		DailyProduction: 300,
		DailySales:      280,
		SafetyStock:     500,
		Days:            DefaultScheduleDays,
	}
}

func isWeekend(day int) bool {
	d := day % 7
	return d == 0 || d == 6
}

func SimulateSchedule(in ScheduleInput) (ScheduleResult, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"opening_stock", in.OpeningStock},
		{"daily_production", in.DailyProduction},
		{"daily_sales", in.DailySales},
		{"safety_stock", in.SafetyStock},
	} {
		if !model.IsFinite(f.v) || f.v < 0 {
			return ScheduleResult{}, model.Invalid(f.name, "must be finite and >= 0, got %g", f.v)
		}
	}
	days := in.Days
	if days == 0 {
		days = DefaultScheduleDays
	}
	if days < 0 || days > 366 {
		return ScheduleResult{}, model.Invalid("days", "must be in [1, 366], got %d", days)
	}
	weekend := DefaultWeekendSales
	if in.WeekendSales != nil {
		weekend = *in.WeekendSales
		if !model.IsFinite(weekend) || weekend < 0 || weekend > 1 {
			return ScheduleResult{}, model.Invalid("weekend_sales", "must be in [0, 1], got %g", weekend)
		}
	}

	res := ScheduleResult{Days: make([]ScheduleDay, 0, days)}
	stock := in.OpeningStock
	res.MinStock = stock
	for day := 1; day <= days; day++ {
		prod, sales := in.DailyProduction, in.DailySales
		if isWeekend(day) {
			prod, sales = 0, in.DailySales*weekend
		}
		stock += prod - sales
		res.Days = append(res.Days, ScheduleDay{Day: day, Production: prod, Sales: sales, Stock: stock})
		if stock < res.MinStock {
			res.MinStock = stock
		}
		if stock < in.SafetyStock && res.FirstBelowSafety == 0 {
			res.FirstBelowSafety = day
		}
	}
	res.FinalStock = stock
	res.FinalBelowSafety = stock < in.SafetyStock
	return res, nil
}

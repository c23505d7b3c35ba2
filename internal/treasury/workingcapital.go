package treasury

import "budget-control/internal/model"

// WorkingCapitalNeed is stocks + receivables - payables.
func WorkingCapitalNeed(stocks, receivables, payables float64) float64 {
	return stocks + receivables - payables
}

// OperatingWorkingCapital estimates the need from payment delays:
// DSO/30 months of revenue carried as receivables minus DPO/30 months of
// expenses carried as payables.
func OperatingWorkingCapital(dso, dpo, monthlyRevenue, monthlyExpenses float64) float64 {
	return dso/DefaultPeriodDays*monthlyRevenue - dpo/DefaultPeriodDays*monthlyExpenses
}

// DSO is the average collection delay in days: receivables / revenue * days.
func DSO(receivables, revenue float64, days int) (float64, error) {
	return outstanding("revenue", receivables, revenue, days)
}

// DPO is the average payment delay in days: payables / purchases * days.
func DPO(payables, purchases float64, days int) (float64, error) {
	return outstanding("purchases", payables, purchases, days)
}

func outstanding(name string, balance, flow float64, days int) (float64, error) {
	if flow <= 0 || !model.IsFinite(flow) {
		return 0, &model.InvalidParameterError{Name: name, Value: flow}
	}
	if days <= 0 {
		return 0, &model.InvalidParameterError{Name: "days", Value: float64(days)}
	}
	return balance / flow * float64(days), nil
}

package inventory

import (
	"math"

	"budget-control/internal/model"
)

// HoldingRate is the annual storage cost per unit of average stock value
// (0.25 means 25 per 100 held).
func HoldingRate(annualStorageCost, openingStock, closingStock float64) (float64, error) {
	if annualStorageCost < 0 || !model.IsFinite(annualStorageCost) {
		return 0, &model.InvalidParameterError{Name: "annual_storage_cost", Value: annualStorageCost, Want: ">= 0"}
	}
	avg := (openingStock + closingStock) / 2
	if avg <= 0 || !model.IsFinite(avg) {
		return 0, &model.InvalidParameterError{Name: "average_stock", Value: avg}
	}
	return annualStorageCost / avg, nil
}

// z-scores for the service levels offered to users.
var serviceLevelZ = map[int]float64{
	90: 1.28,
	95: 1.65,
	97: 1.88,
	98: 2.05,
	99: 2.33,
}

// ServiceLevelZ returns the z-score for a service level in percent.
func ServiceLevelZ(level int) (float64, error) {
	z, ok := serviceLevelZ[level]
	if !ok {
		return 0, model.Invalid("service_level", "unsupported level %d (want 90, 95, 97, 98 or 99)", level)
	}
	return z, nil
}

// SafetyStock is z*sigma*sqrt(L), with sigma the standard deviation of daily
// demand and L the lead time in days.
func SafetyStock(z, sigmaDemand, leadTimeDays float64) (float64, error) {
	if z < 0 || sigmaDemand < 0 || leadTimeDays < 0 {
		return 0, model.Invalid("safety_stock", "z, sigma and lead time must be >= 0")
	}
	return z * sigmaDemand * math.Sqrt(leadTimeDays), nil
}

// ReorderPoint is the stock level that triggers a new order.
func ReorderPoint(dailyDemand, leadTimeDays, safetyStock float64) float64 {
	return dailyDemand*leadTimeDays + safetyStock
}

// StockPosition summarizes stock-out exposure for the current stock level.
type StockPosition struct {
	SafetyStock  float64 `json:"safety_stock"`
	ReorderPoint float64 `json:"reorder_point"`
	DaysCover    float64 `json:"days_cover"`
	AtRisk       bool    `json:"at_risk"`
}

func AssessStock(current, dailyDemand, sigmaDemand, leadTimeDays float64, serviceLevel int) (StockPosition, error) {
	if dailyDemand <= 0 {
		return StockPosition{}, &model.InvalidParameterError{Name: "daily_demand", Value: dailyDemand}
	}
	z, err := ServiceLevelZ(serviceLevel)
	if err != nil {
		return StockPosition{}, err
	}
	ss, err := SafetyStock(z, sigmaDemand, leadTimeDays)
	if err != nil {
		return StockPosition{}, err
	}
	rp := ReorderPoint(dailyDemand, leadTimeDays, ss)
	return StockPosition{
		SafetyStock:  ss,
		ReorderPoint: rp,
		DaysCover:    current / dailyDemand,
		AtRisk:       current < rp,
	}, nil
}

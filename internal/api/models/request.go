package models

import (
	"budget-control/internal/inventory"
	"budget-control/internal/model"
	"budget-control/internal/production"
	"budget-control/internal/store"
	"budget-control/internal/treasury"
)

// SeriesInput carries history either inline or as a key in the series source.
// Values wins when both are set.
type SeriesInput struct {
	Values    []float64 `json:"values,omitempty"`
	SeriesKey string    `json:"series_key,omitempty"`
}

// TrendRequest represents the request body for fitting a sales trend
type TrendRequest struct {
	SeriesInput
	Horizon int `json:"horizon,omitempty"` // periods to forecast past the last observation
}

// SeasonalityRequest groups history by season. Seasons takes explicit
// per-season observations; otherwise the series is split by Cycle.
type SeasonalityRequest struct {
	SeriesInput
	Seasons map[string][]float64 `json:"seasons,omitempty"`
	Cycle   int                  `json:"cycle,omitempty"`
}

// BudgetRequest represents the request body for a seasonally adjusted budget
type BudgetRequest struct {
	SeriesInput
	Cycle   int `json:"cycle" binding:"required"`
	Horizon int `json:"horizon" binding:"required"`
}

// EOQRequest is an order policy plus an optional stock position check
type EOQRequest struct {
	model.OrderPolicyInput
	Stock *StockRequest `json:"stock,omitempty"`
}

type StockRequest struct {
	Current      float64 `json:"current"`
	DailyDemand  float64 `json:"daily_demand"`
	SigmaDemand  float64 `json:"sigma_demand"`
	LeadTimeDays float64 `json:"lead_time_days"`
	ServiceLevel int     `json:"service_level"` // 90, 95, 97, 98 or 99
}

// ABCRequest represents the request body for an ABC classification
type ABCRequest struct {
	Items      []inventory.Item      `json:"items" binding:"required"`
	Thresholds *inventory.Thresholds `json:"thresholds,omitempty"`
}

// IRROptions overrides the IRR search bracket and tolerance
type IRROptions struct {
	BracketLow  *float64 `json:"bracket_low,omitempty"`
	BracketHigh *float64 `json:"bracket_high,omitempty"`
	Tolerance   float64  `json:"tolerance,omitempty"`
}

// AppraiseRequest represents the request body for a single project appraisal
type AppraiseRequest struct {
	Project model.InvestmentProject `json:"project" binding:"required"`
	Options IRROptions              `json:"options,omitempty"`
}

// RankRequest represents a request to rank competing projects
type RankRequest struct {
	Projects []model.InvestmentProject `json:"projects" binding:"required"`
	Options  IRROptions                `json:"options,omitempty"`
}

// TreasuryRequest represents the request body for a cash-flow projection
type TreasuryRequest struct {
	Config  treasury.Config `json:"config" binding:"required"`
	Options TreasuryOptions `json:"options,omitempty"`
}

type TreasuryOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// PutSeriesRequest replaces a stored series. Points wins over Values.
type PutSeriesRequest struct {
	Unit   string        `json:"unit,omitempty"`
	Points []model.Point `json:"points,omitempty"`
	Values []float64     `json:"values,omitempty"`
}

// ConnectionRequest registers an external system
type ConnectionRequest struct {
	Name     string            `json:"name" binding:"required"`
	Type     string            `json:"type" binding:"required"` // "ERP", "CRM", "API", ...
	Endpoint string            `json:"endpoint,omitempty"`
	Config   map[string]string `json:"config,omitempty"`
}

type ConnectionStatusRequest struct {
	Status store.ConnectionStatus `json:"status" binding:"required"`
}

// DataFlowRequest registers a data flow between two systems
type DataFlowRequest struct {
	Name         string  `json:"name" binding:"required"`
	SourceSystem string  `json:"source_system" binding:"required"`
	TargetSystem string  `json:"target_system" binding:"required"`
	Frequency    string  `json:"frequency" binding:"required"`
	SuccessRate  float64 `json:"success_rate"`
}

// MixRequest is a product-mix problem; Products and Resources are required
type MixRequest struct {
	production.MixInput
}

// CapacityRequest costs a month of production. When PlannedUnits is zero and
// Requirement is set, the volume comes from the requirement.
type CapacityRequest struct {
	production.CapacityInput
	Requirement *production.Requirement `json:"requirement,omitempty"`
}

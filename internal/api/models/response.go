package models

import (
	"time"

	"budget-control/internal/analysis"
	"budget-control/internal/forecast"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/production"
	"budget-control/internal/treasury"
)

// TrendResponse represents a fitted trend and its forecast
type TrendResponse struct {
	Trend    forecast.Trend `json:"trend"`
	Forecast []model.Point  `json:"forecast,omitempty"`
}

// SeasonalityResponse lists coefficients in season order with their class
type SeasonalityResponse struct {
	Profile model.SeasonalProfile `json:"profile"`
	Seasons []SeasonInfo          `json:"seasons"`
}

type SeasonInfo struct {
	Label       string               `json:"label"`
	Coefficient float64              `json:"coefficient"`
	Class       forecast.SeasonClass `json:"class"`
}

// EOQResponse represents the optimal order policy
type EOQResponse struct {
	Result inventory.EOQResult      `json:"result"`
	Stock  *inventory.StockPosition `json:"stock,omitempty"`
}

// ABCResponse represents a classification and its per-class summary
type ABCResponse struct {
	Items   []inventory.Classified   `json:"items"`
	Summary []inventory.ClassSummary `json:"summary"`
}

// AppraisalResponse wraps an appraisal with the journal run ID, when recorded
type AppraisalResponse struct {
	RunID     string               `json:"run_id,omitempty"`
	Appraisal investment.Appraisal `json:"appraisal"`
}

// RankResponse represents the response from ranking projects
type RankResponse struct {
	RunID    string                   `json:"run_id,omitempty"`
	Rankings []analysis.RankedProject `json:"rankings"`
}

// TreasuryResponse represents the response from a projection. ID retrieves
// the ledger and report later.
type TreasuryResponse struct {
	ID       string                 `json:"id"`
	Status   treasury.Status        `json:"status"`
	Summary  TreasurySummary        `json:"summary"`
	Warnings []treasury.Warning     `json:"warnings"`
	Ledger   []treasury.LedgerEntry `json:"ledger,omitempty"`
}

// TreasurySummary contains aggregated projection results
type TreasurySummary struct {
	Periods        int     `json:"periods"`
	TotalInflow    float64 `json:"total_inflow"`
	TotalOutflow   float64 `json:"total_outflow"`
	MinBalance     float64 `json:"min_balance"`
	MaxBalance     float64 `json:"max_balance"`
	FinalBalance   float64 `json:"final_balance"`
	AverageNetFlow float64 `json:"average_net_flow"`
	PeakCredit     float64 `json:"peak_credit"`
}

// LedgerResponse represents a cached projection ledger
type LedgerResponse struct {
	ID     string                 `json:"id"`
	Ledger []treasury.LedgerEntry `json:"ledger"`
}

// SeriesResponse is a series document plus descriptive statistics. The
// document fields sit at the top level so data.HTTPSource can read it.
type SeriesResponse struct {
	model.SeriesDocument
	Summary analysis.SeriesSummary `json:"summary"`
}

type SeriesListResponse struct {
	Keys []string `json:"keys"`
}

// RunInfo is one entry of the calculation journal
type RunInfo struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type RunListResponse struct {
	Runs []RunInfo `json:"runs"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ScenarioInfo represents a scenario file and the sections it configures
type ScenarioInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Sections []string `json:"sections"`
}

// CalculatorInfo describes one calculator endpoint
type CalculatorInfo struct {
	Name        string          `json:"name"`
	Endpoint    string          `json:"endpoint"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
}

// ParameterInfo describes a calculator parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string", ...
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// MixResponse wraps the optimal product mix with the journal run ID, when recorded
type MixResponse struct {
	RunID  string               `json:"run_id,omitempty"`
	Result production.MixResult `json:"result"`
}

// CapacityResponse is the costed month and the requirement it was sized from
type CapacityResponse struct {
	Requirement *production.RequirementResult `json:"requirement,omitempty"`
	Result      production.CapacityResult     `json:"result"`
}

package handlers

import (
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/production"
	"budget-control/internal/treasury"

	"github.com/gin-gonic/gin"
)

// CatalogHandler describes the calculators the API exposes
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCalculators handles GET /api/v1/calculators
func (h *CatalogHandler) ListCalculators(c *gin.Context) {
	bracket := investment.DefaultBracket()
	th := inventory.DefaultThresholds()
	calculators := []models.CalculatorInfo{
		{
			Name:        "trend",
			Endpoint:    "POST /api/v1/forecast/trend",
			Description: "Least-squares linear trend of a sales history with R² and an optional forecast.",
			Parameters: []models.ParameterInfo{
				{Name: "values", Type: "float[]", Description: "History, one value per period (periods 1..n)"},
				{Name: "series_key", Type: "string", Description: "Stored series used when values is empty"},
				{Name: "horizon", Type: "int", Description: "Periods to forecast past the last observation", Default: 0},
			},
		},
		{
			Name:        "seasonality",
			Endpoint:    "POST /api/v1/forecast/seasonality",
			Description: "Seasonal coefficients (season mean / overall mean) classified LOW, NORMAL or HIGH.",
			Parameters: []models.ParameterInfo{
				{Name: "seasons", Type: "map[string]float[]", Description: "Observations per season label"},
				{Name: "cycle", Type: "int", Description: "Season count when splitting values by position"},
			},
		},
		{
			Name:        "budget",
			Endpoint:    "POST /api/v1/forecast/budget",
			Description: "Trend forecast multiplied by the seasonal coefficient of each future period.",
			Parameters: []models.ParameterInfo{
				{Name: "cycle", Type: "int", Description: "Seasons per cycle (4 for quarters, 12 for months)"},
				{Name: "horizon", Type: "int", Description: "Periods to budget"},
			},
		},
		{
			Name:        "eoq",
			Endpoint:    "POST /api/v1/inventory/eoq",
			Description: "Economic order quantity (Wilson), with planned backorders when a shortage cost is given.",
			Parameters: []models.ParameterInfo{
				{Name: "annual_demand", Type: "float", Description: "Units per year"},
				{Name: "order_cost", Type: "float", Description: "Fixed cost per order"},
				{Name: "holding_cost_per_unit", Type: "float", Description: "Annual holding cost per unit"},
				{Name: "backorder_cost", Type: "float", Description: "Annual shortage cost per unit (optional)"},
				{Name: "stock.service_level", Type: "int", Description: "90, 95, 97, 98 or 99", Default: 95},
			},
		},
		{
			Name:        "abc",
			Endpoint:    "POST /api/v1/inventory/abc",
			Description: "Pareto classification of items by annual consumption value.",
			Parameters: []models.ParameterInfo{
				{Name: "thresholds.a", Type: "float", Description: "Cumulative % bound of class A", Default: th.A},
				{Name: "thresholds.b", Type: "float", Description: "Cumulative % bound of class B", Default: th.B},
			},
		},
		{
			Name:        "production_mix",
			Endpoint:    "POST /api/v1/production/mix",
			Description: "Product mix maximizing total margin under resource capacities and demand caps (simplex).",
			Parameters: []models.ParameterInfo{
				{Name: "products", Type: "object[]", Description: "name, margin, usage per resource, optional max_demand"},
				{Name: "resources", Type: "object[]", Description: "name and capacity"},
			},
		},
		{
			Name:        "production_capacity",
			Endpoint:    "POST /api/v1/production/capacity",
			Description: "Monthly capacity and cost of a workshop: labour and machines fixed, material variable.",
			Parameters: []models.ParameterInfo{
				{Name: "weeks_per_month", Type: "float", Description: "Weeks converting weekly hours to a month", Default: production.DefaultWeeksPerMonth},
				{Name: "efficiency", Type: "float", Description: "Machine yield in percent"},
				{Name: "requirement", Type: "object", Description: "sales, opening_stock, target_stock; sizes planned_units when it is 0"},
			},
		},
		{
			Name:        "production_schedule",
			Endpoint:    "POST /api/v1/production/schedule",
			Description: "Daily stock simulation with no weekend production and reduced weekend sales.",
			Parameters: []models.ParameterInfo{
				{Name: "days", Type: "int", Description: "Days simulated", Default: production.DefaultScheduleDays},
				{Name: "weekend_sales", Type: "float", Description: "Share of daily sales made on weekends", Default: production.DefaultWeekendSales},
			},
		},
		{
			Name:        "appraise",
			Endpoint:    "POST /api/v1/investment/appraise",
			Description: "NPV, IRR (bisection), payback and profitability index of one project.",
			Parameters: []models.ParameterInfo{
				{Name: "options.bracket_low", Type: "float", Description: "Lower IRR search bound", Default: bracket.Low},
				{Name: "options.bracket_high", Type: "float", Description: "Upper IRR search bound", Default: bracket.High},
				{Name: "options.tolerance", Type: "float", Description: "IRR bracket half-width at convergence", Default: investment.DefaultTolerance},
			},
		},
		{
			Name:        "rank",
			Endpoint:    "POST /api/v1/investment/rank",
			Description: "Projects ordered by NPV, with their IRR rank for comparison.",
		},
		{
			Name:        "treasury",
			Endpoint:    "POST /api/v1/treasury/project",
			Description: "Period-by-period cash projection with collection and payment delays and a credit line.",
			Parameters: []models.ParameterInfo{
				{Name: "config.period_days", Type: "int", Description: "Days per period used to round delays", Default: treasury.DefaultPeriodDays},
				{Name: "config.credit_line", Type: "float", Description: "Authorized overdraft; deeper balances raise LIQUIDITY_BREACH", Default: 0.0},
				{Name: "options.include_ledger", Type: "bool", Description: "Return the ledger inline", Default: false},
			},
		},
	}
	c.JSON(http.StatusOK, gin.H{"calculators": calculators})
}

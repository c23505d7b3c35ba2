package handlers

import (
	"context"
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/data"
	"budget-control/internal/forecast"
	"budget-control/internal/model"

	"github.com/gin-gonic/gin"
)

// ForecastHandler handles trend, seasonality and budget requests
type ForecastHandler struct {
	source data.SeriesSource
}

// NewForecastHandler creates a forecast handler. source resolves series_key
// references and may be nil, in which case only inline values are accepted.
func NewForecastHandler(source data.SeriesSource) *ForecastHandler {
	return &ForecastHandler{source: source}
}

func (h *ForecastHandler) series(ctx context.Context, in models.SeriesInput) (model.TimeSeries, error) {
	switch {
	case len(in.Values) > 0:
		return model.NewTimeSeries(in.Values...), nil
	case in.SeriesKey != "":
		if h.source == nil {
			return model.TimeSeries{}, model.Invalid("series_key", "no series source is configured")
		}
		return h.source.FetchSeries(ctx, in.SeriesKey)
	}
	return model.TimeSeries{}, model.Invalid("values", "either values or series_key is required")
}

// FitTrend handles POST /api/v1/forecast/trend
func (h *ForecastHandler) FitTrend(c *gin.Context) {
	var req models.TrendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Horizon < 0 {
		respondError(c, "FitTrend", model.Invalid("horizon", "must be >= 0, got %d", req.Horizon))
		return
	}

	series, err := h.series(c.Request.Context(), req.SeriesInput)
	if err != nil {
		respondError(c, "FitTrend", err)
		return
	}
	trend, err := forecast.FitTrend(series)
	if err != nil {
		respondError(c, "FitTrend", err)
		return
	}

	resp := models.TrendResponse{Trend: trend}
	if req.Horizon > 0 {
		resp.Forecast = trend.ForecastNext(series.Last().Period, req.Horizon)
	}
	c.JSON(http.StatusOK, resp)
}

// Seasonality handles POST /api/v1/forecast/seasonality
func (h *ForecastHandler) Seasonality(c *gin.Context) {
	var req models.SeasonalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		profile model.SeasonalProfile
		err     error
	)
	if len(req.Seasons) > 0 {
		profile, err = forecast.ComputeSeasonalCoefficients(req.Seasons)
	} else {
		var series model.TimeSeries
		series, err = h.series(c.Request.Context(), req.SeriesInput)
		if err == nil {
			profile, err = forecast.ComputeSeasonalCoefficientsFromSeries(series, req.Cycle)
		}
	}
	if err != nil {
		respondError(c, "Seasonality", err)
		return
	}

	resp := models.SeasonalityResponse{Profile: profile, Seasons: make([]models.SeasonInfo, 0, len(profile.Labels))}
	for _, label := range profile.Labels {
		coef := profile.Coefficients[label]
		resp.Seasons = append(resp.Seasons, models.SeasonInfo{
			Label:       label,
			Coefficient: coef,
			Class:       forecast.ClassifySeason(coef),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Budget handles POST /api/v1/forecast/budget
func (h *ForecastHandler) Budget(c *gin.Context) {
	var req models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	series, err := h.series(c.Request.Context(), req.SeriesInput)
	if err != nil {
		respondError(c, "Budget", err)
		return
	}
	budget, err := forecast.BuildSalesBudget(series, req.Cycle, req.Horizon)
	if err != nil {
		respondError(c, "Budget", err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

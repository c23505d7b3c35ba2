package handlers

import (
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/production"

	"github.com/gin-gonic/gin"
)

const runKindProductionMix = "production_mix"

// ProductionHandler handles product mix, capacity and schedule requests
type ProductionHandler struct {
	journal Journal
}

// NewProductionHandler creates a production handler; journal may be nil.
func NewProductionHandler(journal Journal) *ProductionHandler {
	return &ProductionHandler{journal: journal}
}

// Mix handles POST /api/v1/production/mix
func (h *ProductionHandler) Mix(c *gin.Context) {
	var req models.MixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := production.OptimizeMix(req.MixInput)
	if err != nil {
		respondError(c, "Mix", err)
		return
	}
	c.JSON(http.StatusOK, models.MixResponse{
		RunID:  record(c.Request.Context(), h.journal, runKindProductionMix, res),
		Result: res,
	})
}

// Capacity handles POST /api/v1/production/capacity
func (h *ProductionHandler) Capacity(c *gin.Context) {
	var req models.CapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var resp models.CapacityResponse
	in := req.CapacityInput
	if req.Requirement != nil {
		need, err := req.Requirement.Solve()
		if err != nil {
			respondError(c, "Capacity", err)
			return
		}
		resp.Requirement = &need
		if in.PlannedUnits == 0 {
			in.PlannedUnits = need.Units
		}
	}
	res, err := production.SimulateCapacity(in)
	if err != nil {
		respondError(c, "Capacity", err)
		return
	}
	resp.Result = res
	c.JSON(http.StatusOK, resp)
}

// Schedule handles POST /api/v1/production/schedule
func (h *ProductionHandler) Schedule(c *gin.Context) {
	var in production.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := production.SimulateSchedule(in)
	if err != nil {
		respondError(c, "Schedule", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"budget-control/internal/api/models"

	"github.com/gin-gonic/gin"
)

// RunsHandler exposes the calculation journal
type RunsHandler struct {
	journal Journal
}

func NewRunsHandler(journal Journal) *RunsHandler {
	return &RunsHandler{journal: journal}
}

// ListRuns handles GET /api/v1/runs?kind=&limit=
func (h *RunsHandler) ListRuns(c *gin.Context) {
	if h.journal == nil {
		unavailable(c, "run journal")
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}
	runs, err := h.journal.ListRuns(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		respondError(c, "ListRuns", err)
		return
	}
	resp := models.RunListResponse{Runs: make([]models.RunInfo, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, models.RunInfo{ID: r.ID, Kind: r.Kind, CreatedAt: r.CreatedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunsHandler) GetRun(c *gin.Context) {
	if h.journal == nil {
		unavailable(c, "run journal")
		return
	}
	run, err := h.journal.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetRun", err)
		return
	}
	c.JSON(http.StatusOK, run)
}

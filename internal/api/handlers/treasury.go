package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"budget-control/internal/api/models"
	"budget-control/internal/data"
	"budget-control/internal/id"
	"budget-control/internal/report"
	"budget-control/internal/store"
	"budget-control/internal/treasury"

	"github.com/gin-gonic/gin"
)

const runKindTreasury = "treasury"

// TreasuryHandler handles cash-flow projections. Results are kept in a TTL
// cache by ID and, when a journal is configured, persisted there as well.
type TreasuryHandler struct {
	results *data.Cache[string, *treasury.Result]
	journal Journal
}

// NewTreasuryHandler creates a treasury handler; journal may be nil.
func NewTreasuryHandler(resultTTL time.Duration, journal Journal) *TreasuryHandler {
	return &TreasuryHandler{
		results: data.NewCache[string, *treasury.Result](resultTTL),
		journal: journal,
	}
}

// Close stops the result cache cleanup.
func (h *TreasuryHandler) Close() {
	h.results.Stop()
}

// Project handles POST /api/v1/treasury/project
func (h *TreasuryHandler) Project(c *gin.Context) {
	var req models.TreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := treasury.New().Project(req.Config)
	if err != nil {
		respondError(c, "Project", err)
		return
	}

	runID := record(c.Request.Context(), h.journal, runKindTreasury, res)
	if runID == "" {
		runID = id.NewRunID()
	}
	h.results.Set(runID, res)
	if len(res.Warnings) > 0 {
		log.Printf("Project: %s ended %s with %d breach warning(s)", runID, res.Status, len(res.Warnings))
	}

	resp := models.TreasuryResponse{
		ID:       runID,
		Status:   res.Status,
		Warnings: res.Warnings,
		Summary: models.TreasurySummary{
			Periods:        len(res.Ledger),
			TotalInflow:    res.TotalInflow,
			TotalOutflow:   res.TotalOutflow,
			MinBalance:     res.MinBalance,
			MaxBalance:     res.MaxBalance,
			FinalBalance:   res.FinalBalance,
			AverageNetFlow: res.AverageNetFlow,
			PeakCredit:     res.PeakCredit,
		},
	}
	if resp.Warnings == nil {
		resp.Warnings = []treasury.Warning{}
	}
	if req.Options.IncludeLedger {
		resp.Ledger = res.Ledger
	}
	c.JSON(http.StatusOK, resp)
}

// lookup finds a projection in the cache, then in the journal.
func (h *TreasuryHandler) lookup(ctx context.Context, runID string) (*treasury.Result, error) {
	if res, ok := h.results.Get(runID); ok {
		return res, nil
	}
	if h.journal == nil || !id.Valid(runID) {
		return nil, fmt.Errorf("%w: projection %s", store.ErrNotFound, runID)
	}
	run, err := h.journal.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Kind != runKindTreasury {
		return nil, fmt.Errorf("%w: run %s is a %s run", store.ErrNotFound, runID, run.Kind)
	}
	var res treasury.Result
	if err := run.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	h.results.Set(runID, &res)
	return &res, nil
}

// GetLedger handles GET /api/v1/treasury/:id/ledger?format=json|csv
func (h *TreasuryHandler) GetLedger(c *gin.Context) {
	runID := c.Param("id")
	res, err := h.lookup(c.Request.Context(), runID)
	if err != nil {
		respondError(c, "GetLedger", err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", runID+".csv"))
		c.Status(http.StatusOK)
		if err := treasury.WriteLedger(c.Writer, res.Ledger); err != nil {
			log.Printf("GetLedger: write csv %s: %v", runID, err)
		}
	case "json":
		c.JSON(http.StatusOK, models.LedgerResponse{ID: runID, Ledger: res.Ledger})
	default:
		badRequest(c, fmt.Errorf("unsupported format %q (want json or csv)", c.Query("format")))
	}
}

// GetReport handles GET /api/v1/treasury/:id/report?format=html|md
func (h *TreasuryHandler) GetReport(c *gin.Context) {
	runID := c.Param("id")
	res, err := h.lookup(c.Request.Context(), runID)
	if err != nil {
		respondError(c, "GetReport", err)
		return
	}

	md := report.TreasuryMarkdown(res)
	switch c.DefaultQuery("format", "html") {
	case "md":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
	case "html":
		body, err := report.RenderHTML(md)
		if err != nil {
			respondError(c, "GetReport", err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(report.Page("Cash-flow projection "+runID, body)))
	default:
		badRequest(c, fmt.Errorf("unsupported format %q (want html or md)", c.Query("format")))
	}
}

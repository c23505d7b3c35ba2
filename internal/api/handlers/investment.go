package handlers

import (
	"net/http"

	"budget-control/internal/analysis"
	"budget-control/internal/api/models"
	"budget-control/internal/investment"

	"github.com/gin-gonic/gin"
)

// InvestmentHandler handles appraisal and ranking requests
type InvestmentHandler struct {
	journal Journal
}

// NewInvestmentHandler creates an investment handler; journal may be nil.
func NewInvestmentHandler(journal Journal) *InvestmentHandler {
	return &InvestmentHandler{journal: journal}
}

func irrOptions(o models.IRROptions) investment.Options {
	opts := investment.Options{Tolerance: o.Tolerance}
	if o.BracketLow != nil || o.BracketHigh != nil {
		b := investment.DefaultBracket()
		if o.BracketLow != nil {
			b.Low = *o.BracketLow
		}
		if o.BracketHigh != nil {
			b.High = *o.BracketHigh
		}
		opts.Bracket = &b
	}
	return opts
}

// Appraise handles POST /api/v1/investment/appraise
func (h *InvestmentHandler) Appraise(c *gin.Context) {
	var req models.AppraiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := investment.Appraise(req.Project, irrOptions(req.Options))
	if err != nil {
		respondError(c, "Appraise", err)
		return
	}
	c.JSON(http.StatusOK, models.AppraisalResponse{
		RunID:     record(c.Request.Context(), h.journal, "appraisal", a),
		Appraisal: a,
	})
}

// Rank handles POST /api/v1/investment/rank
func (h *InvestmentHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ranked, err := analysis.RankByNPV(req.Projects, irrOptions(req.Options))
	if err != nil {
		respondError(c, "Rank", err)
		return
	}
	c.JSON(http.StatusOK, models.RankResponse{
		RunID:    record(c.Request.Context(), h.journal, "ranking", ranked),
		Rankings: ranked,
	})
}

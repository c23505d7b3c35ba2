package handlers

import (
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/inventory"

	"github.com/gin-gonic/gin"
)

// InventoryHandler handles order policy and ABC requests
type InventoryHandler struct{}

func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{}
}

// EOQ handles POST /api/v1/inventory/eoq
func (h *InventoryHandler) EOQ(c *gin.Context) {
	var req models.EOQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := inventory.SolveEOQ(req.OrderPolicyInput)
	if err != nil {
		respondError(c, "EOQ", err)
		return
	}

	resp := models.EOQResponse{Result: res}
	if s := req.Stock; s != nil {
		pos, err := inventory.AssessStock(s.Current, s.DailyDemand, s.SigmaDemand, s.LeadTimeDays, s.ServiceLevel)
		if err != nil {
			respondError(c, "EOQ", err)
			return
		}
		resp.Stock = &pos
	}
	c.JSON(http.StatusOK, resp)
}

// ABC handles POST /api/v1/inventory/abc
func (h *InventoryHandler) ABC(c *gin.Context) {
	var req models.ABCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	th := inventory.DefaultThresholds()
	if req.Thresholds != nil {
		th = *req.Thresholds
	}
	items, err := inventory.ClassifyABC(req.Items, th)
	if err != nil {
		respondError(c, "ABC", err)
		return
	}
	c.JSON(http.StatusOK, models.ABCResponse{
		Items:   items,
		Summary: inventory.SummarizeABC(items),
	})
}

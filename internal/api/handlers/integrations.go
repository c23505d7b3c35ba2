package handlers

import (
	"net/http"

	"budget-control/internal/api/models"
	"budget-control/internal/store"

	"github.com/gin-gonic/gin"
)

// IntegrationHandler manages the registry of external systems and data
// flows. Connectors are recorded, never executed.
type IntegrationHandler struct {
	registry Registry
}

func NewIntegrationHandler(registry Registry) *IntegrationHandler {
	return &IntegrationHandler{registry: registry}
}

func (h *IntegrationHandler) ready(c *gin.Context) bool {
	if h.registry == nil {
		unavailable(c, "integration registry")
		return false
	}
	return true
}

// ListConnections handles GET /api/v1/integrations
func (h *IntegrationHandler) ListConnections(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	conns, err := h.registry.ListConnections(c.Request.Context())
	if err != nil {
		respondError(c, "ListConnections", err)
		return
	}
	if conns == nil {
		conns = []store.Connection{}
	}
	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// AddConnection handles POST /api/v1/integrations
func (h *IntegrationHandler) AddConnection(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req models.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	conn, err := h.registry.AddConnection(c.Request.Context(), store.Connection{
		Name:     req.Name,
		Type:     req.Type,
		Endpoint: req.Endpoint,
		Config:   req.Config,
	})
	if err != nil {
		respondError(c, "AddConnection", err)
		return
	}
	c.JSON(http.StatusCreated, conn)
}

// SetConnectionStatus handles PUT /api/v1/integrations/:id/status
func (h *IntegrationHandler) SetConnectionStatus(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req models.ConnectionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.registry.SetConnectionStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, "SetConnectionStatus", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDataFlows handles GET /api/v1/dataflows
func (h *IntegrationHandler) ListDataFlows(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	flows, err := h.registry.ListDataFlows(c.Request.Context())
	if err != nil {
		respondError(c, "ListDataFlows", err)
		return
	}
	if flows == nil {
		flows = []store.DataFlow{}
	}
	c.JSON(http.StatusOK, gin.H{"data_flows": flows})
}

// AddDataFlow handles POST /api/v1/dataflows
func (h *IntegrationHandler) AddDataFlow(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req models.DataFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flow, err := h.registry.AddDataFlow(c.Request.Context(), store.DataFlow{
		Name:         req.Name,
		SourceSystem: req.SourceSystem,
		TargetSystem: req.TargetSystem,
		Frequency:    req.Frequency,
		SuccessRate:  req.SuccessRate,
	})
	if err != nil {
		respondError(c, "AddDataFlow", err)
		return
	}
	c.JSON(http.StatusCreated, flow)
}

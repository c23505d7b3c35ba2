package handlers

import (
	"net/http"
	"strings"

	"budget-control/internal/analysis"
	"budget-control/internal/api/models"
	"budget-control/internal/data"
	"budget-control/internal/model"

	"github.com/gin-gonic/gin"
)

// SeriesHandler serves stored history. Reads go through source (usually a
// cached view of the store); writes go to the store and drop the cached copy.
type SeriesHandler struct {
	store  SeriesStore
	source data.SeriesSource
}

// NewSeriesHandler creates a series handler. Either argument may be nil;
// reads fall back to the store when source is nil.
func NewSeriesHandler(st SeriesStore, source data.SeriesSource) *SeriesHandler {
	if source == nil && st != nil {
		source = st
	}
	return &SeriesHandler{store: st, source: source}
}

func seriesKey(c *gin.Context) string {
	return strings.Trim(c.Param("key"), "/")
}

func (h *SeriesHandler) invalidate(key string) {
	if inv, ok := h.source.(interface{ Invalidate(string) }); ok {
		inv.Invalidate(key)
	}
}

// ListSeries handles GET /api/v1/series
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	if h.store == nil {
		unavailable(c, "series store")
		return
	}
	keys, err := h.store.ListSeriesKeys(c.Request.Context())
	if err != nil {
		respondError(c, "ListSeries", err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, models.SeriesListResponse{Keys: keys})
}

// GetSeries handles GET /api/v1/series/*key
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	if h.source == nil {
		unavailable(c, "series source")
		return
	}
	ts, err := h.source.FetchSeries(c.Request.Context(), seriesKey(c))
	if err != nil {
		respondError(c, "GetSeries", err)
		return
	}
	h.respondSeries(c, http.StatusOK, ts)
}

func (h *SeriesHandler) respondSeries(c *gin.Context, status int, ts model.TimeSeries) {
	sum, err := analysis.SummarizeSeries(ts)
	if err != nil {
		respondError(c, "SummarizeSeries", err)
		return
	}
	c.JSON(status, models.SeriesResponse{
		SeriesDocument: model.SeriesDocument{Key: ts.Key, Unit: ts.Unit, Points: ts.Points},
		Summary:        sum,
	})
}

// PutSeries handles PUT /api/v1/series/*key
func (h *SeriesHandler) PutSeries(c *gin.Context) {
	if h.store == nil {
		unavailable(c, "series store")
		return
	}
	var req models.PutSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ts := model.TimeSeries{Key: seriesKey(c), Unit: req.Unit, Points: req.Points}
	if len(ts.Points) == 0 {
		ts.Points = model.NewTimeSeries(req.Values...).Points
	}
	if err := h.store.SaveSeries(c.Request.Context(), ts); err != nil {
		respondError(c, "PutSeries", err)
		return
	}
	h.invalidate(ts.Key)
	h.respondSeries(c, http.StatusOK, ts)
}

// DeleteSeries handles DELETE /api/v1/series/*key
func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	if h.store == nil {
		unavailable(c, "series store")
		return
	}
	key := seriesKey(c)
	if err := h.store.DeleteSeries(c.Request.Context(), key); err != nil {
		respondError(c, "DeleteSeries", err)
		return
	}
	h.invalidate(key)
	c.Status(http.StatusNoContent)
}

package handler

import (
	"github.com/gin-gonic/gin"
	insightsapp "github.com/shopsight/backend/internal/application/insights"
)

// InsightsHandler handles aggregated insight API endpoints
type InsightsHandler struct {
	BaseHandler
	insightsService *insightsapp.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(insightsService *insightsapp.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// GetSentimentCounts godoc
// @Summary      Get review sentiment counts
// @Description  Report how many analyzed reviews fall into each sentiment bucket
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response{data=insightsapp.SentimentCountsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /insights/sentiment [get]
func (h *InsightsHandler) GetSentimentCounts(c *gin.Context) {
	counts, err := h.insightsService.GetSentimentCounts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, counts)
}

// GetGeneralAggregates godoc
// @Summary      Get general aggregates
// @Description  Report entity totals and the running average rating
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response{data=insightsapp.GeneralAggregatesResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /insights/aggregates [get]
func (h *InsightsHandler) GetGeneralAggregates(c *gin.Context) {
	aggregates, err := h.insightsService.GetGeneralAggregates(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, aggregates)
}

// GetStatusCounts godoc
// @Summary      Get product status counts
// @Description  Report how many products are in each lifecycle status, maintained by change events
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response{data=insightsapp.StatusCountsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /insights/product-status [get]
func (h *InsightsHandler) GetStatusCounts(c *gin.Context) {
	counts, err := h.insightsService.GetStatusCounts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, counts)
}

// GetOutboxStats godoc
// @Summary      Get outbox delivery statistics
// @Description  Report how many outbox entries are in each delivery status. Admin only.
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response{data=insightsapp.OutboxStatsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /insights/outbox/stats [get]
func (h *InsightsHandler) GetOutboxStats(c *gin.Context) {
	stats, err := h.insightsService.GetOutboxStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

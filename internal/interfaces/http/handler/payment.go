package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentsapp "github.com/shopsight/backend/internal/application/payments"
)

// PaymentHandler handles payment record API endpoints
// All routes are admin only; records are written by the Stripe webhook.
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentsapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentsapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// List godoc
// @Summary      List payment records
// @Description  Retrieve a paginated list of payment records synced from Stripe. Admin only.
// @Tags         payments
// @Produce      json
// @Param        status query string false "Payment status" Enums(succeeded, failed, refunded)
// @Param        product_sku query string false "Product SKU"
// @Param        currency query string false "ISO currency code"
// @Param        search query string false "Search term (customer email, payment intent)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]paymentsapp.PaymentRecordResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter paymentsapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	result, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get payment record by ID
// @Description  Retrieve a payment record by its ID. Admin only.
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment record ID" format(uuid)
// @Success      200 {object} dto.Response{data=paymentsapp.PaymentRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment record ID format")
		return
	}

	record, err := h.paymentService.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

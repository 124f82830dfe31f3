package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edumentor/edumentor-api/internal/service"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// PaymentHandler wires the payment flow to HTTP routes.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs a new PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Initiate godoc
// @Summary Initiate a mobile-money payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.InitiatePaymentRequest true "Payment payload"
// @Success 200 {object} service.InitiatePaymentResponse
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req service.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	res, err := h.payments.Initiate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Webhook godoc
// @Summary Eversend settlement webhook
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.WebhookRequest true "Webhook payload"
// @Success 200 {object} service.WebhookResponse
// @Router /payments/webhook/eversend [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	// Deliveries are always acknowledged with 200 so the provider stops
	// retrying; a malformed body degrades to an empty request.
	var req service.WebhookRequest
	_ = c.ShouldBindJSON(&req)

	res := h.payments.HandleWebhook(c.Request.Context(), req)
	response.OK(c, res)
}

// Get godoc
// @Summary Get payment status by transaction id
// @Tags Payments
// @Produce json
// @Param transaction_id path string true "Provider transaction ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} response.Envelope
// @Router /payments/{transaction_id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	transactionID := strings.TrimSpace(c.Param("transaction_id"))
	if transactionID == "" {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "transaction_id is required"))
		return
	}
	payment, err := h.payments.GetByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payment)
}

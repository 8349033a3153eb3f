package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type Handler struct {
	provider Provider
	payments paymentRepo
}

func NewHandler(provider Provider, payments paymentRepo) *Handler {
	return &Handler{provider: provider, payments: payments}
}

// RegisterPublicRoutes mounts the payment endpoints. The webhook is public by
// nature; it authenticates via the provider signature instead of a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/intent", h.CreateIntent)
	rg.POST("/payments/confirm", h.Confirm)
	rg.POST("/payments/webhook/mock", h.MockWebhook)
}

// RegisterStaffRoutes mounts refunds, staff only.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/:id/refund", h.Refund)
}

func (h *Handler) Refund(c *gin.Context) {
	// The payment must belong to the caller's tenant; anything else reads
	// as not found so ids from other tenants stay invisible.
	pay, err := h.payments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Refund failed")
		return
	}
	if pay.TenantID != c.GetInt64("tenant_id") {
		response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found")
		return
	}

	status, err := h.provider.Refund(c.Request.Context(), pay.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found")
		case errors.Is(err, ErrNotRefundable):
			response.Error(c, http.StatusConflict, "NOT_REFUNDABLE", "Only succeeded payments can be refunded")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Refund failed")
		}
		return
	}

	response.Success(c, http.StatusOK, IntentResponse{
		IntentID: c.Param("id"),
		Status:   string(status),
	})
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	intentID, err := h.provider.CreateIntent(c.Request.Context(), req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrBookingAlreadyPaid):
			response.Error(c, http.StatusConflict, "BOOKING_ALREADY_PAID", "Booking is already paid")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create payment intent")
		}
		return
	}

	response.Success(c, http.StatusCreated, IntentResponse{
		IntentID: intentID,
		Status:   string(domain.PaymentRequiresPayment),
	})
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	status, err := h.provider.Confirm(c.Request.Context(), req.IntentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment intent not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm payment")
		return
	}

	response.Success(c, http.StatusOK, IntentResponse{
		IntentID: req.IntentID,
		Status:   string(status),
	})
}

// MockWebhook receives provider callbacks. A succeeded event is re-driven
// through Confirm, which is idempotent, so replayed deliveries are harmless.
func (h *Handler) MockWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable body")
		return
	}

	evt, err := h.provider.VerifyWebhook(c.Request.Header, body)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature mismatch")
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed webhook payload")
		return
	}

	switch evt.Event {
	case EventPaymentFailed:
		if err := h.payments.UpdateStatus(c.Request.Context(), evt.IntentID, domain.PaymentFailed); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment intent not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record payment failure")
			return
		}
	default:
		if _, err := h.provider.Confirm(c.Request.Context(), evt.IntentID); err != nil {
			if errors.Is(err, ErrPaymentNotFound) {
				response.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment intent not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply webhook")
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

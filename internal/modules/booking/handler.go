package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the patient-facing booking endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
}

// RegisterStaffRoutes mounts tenant-scoped staff endpoints (JWT protected).
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
	rg.GET("/bookings/:id", h.GetBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, time or timezone")
		case ErrTenantNotFound:
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
		case ErrServiceNotFound:
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found or inactive")
		case ErrProfessionalNotFound:
			response.Error(c, http.StatusNotFound, "PROFESSIONAL_NOT_FOUND", "Professional not found or inactive")
		case ErrSlotTaken:
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "The selected slot is no longer available")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	data := gin.H{
		"bookingId": result.Booking.ID,
		"status":    result.Booking.Status,
	}
	if result.PaymentStatus != "" {
		data["paymentStatus"] = result.PaymentStatus
	}
	if result.PaymentError != "" {
		data["paymentError"] = result.PaymentError
	}
	response.Success(c, http.StatusCreated, data)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("tenant_id"), id, domain.BookingStatus(req.Status))
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown target status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case ErrInvalidStatusTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to the requested status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

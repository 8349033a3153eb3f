package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.GetSlots)
}

// GetSlots handles GET /slots?slug=&serviceId=&professionalId=&date=YYYY-MM-DD
func (h *Handler) GetSlots(c *gin.Context) {
	slug := c.Query("slug")
	serviceID, _ := strconv.ParseInt(c.Query("serviceId"), 10, 64)
	professionalID, _ := strconv.ParseInt(c.Query("professionalId"), 10, 64)
	date := c.Query("date")

	res, err := h.service.GetDaySlots(c.Request.Context(), slug, serviceID, professionalID, date)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "slug, serviceId, professionalId and date are required")
		case ErrTenantNotFound:
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
		case ErrServiceNotFound:
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found or inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute slots")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

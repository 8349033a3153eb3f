package stats

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/kpis", h.KPIs)
	rg.GET("/export/bookings", h.ExportBookings)
}

// dateRange reads from/to query params, defaulting to the last 30 days.
func dateRange(c *gin.Context) (string, string) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		now := time.Now().UTC()
		to = now.Format("2006-01-02")
		from = now.AddDate(0, 0, -29).Format("2006-01-02")
	}
	return from, to
}

func (h *Handler) KPIs(c *gin.Context) {
	from, to := dateRange(c)
	professionalID, _ := strconv.ParseInt(c.Query("professionalId"), 10, 64)

	resp, err := h.service.KPIs(c.Request.Context(), KPIRequest{
		TenantID:       c.GetInt64("tenant_id"),
		From:           from,
		To:             to,
		ProfessionalID: professionalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
		case errors.Is(err, ErrTenantNotFound):
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute KPIs")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) ExportBookings(c *gin.Context) {
	from, to := dateRange(c)
	professionalID, _ := strconv.ParseInt(c.Query("professionalId"), 10, 64)

	req := ExportRequest{
		TenantID:       c.GetInt64("tenant_id"),
		From:           from,
		To:             to,
		ProfessionalID: professionalID,
		Status:         c.Query("status"),
	}

	var buf bytes.Buffer
	slug, err := h.service.ExportCSV(c.Request.Context(), req, &buf)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
		case errors.Is(err, ErrTenantNotFound):
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		}
		return
	}

	filename := ExportFilename(slug, from, to)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

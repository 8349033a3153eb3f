package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the widget-facing catalog listing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.GetCatalog)
}

// RegisterAdminRoutes mounts catalog management, admin role required.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.CreateService)
	rg.POST("/professionals", h.CreateProfessional)
	rg.POST("/availability-rules", h.CreateRule)
}

func (h *Handler) GetCatalog(c *gin.Context) {
	res, err := h.service.GetCatalog(c.Request.Context(), c.Query("slug"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "slug is required")
		case errors.Is(err, ErrTenantNotFound):
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load catalog")
		}
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create service")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) CreateProfessional(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pro, err := h.service.CreateProfessional(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create professional")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"professional": pro})
}

func (h *Handler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create availability rule")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", fields)
		return
	}
	if errors.Is(err, ErrValidation) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}

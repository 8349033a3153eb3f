package catalog

import "github.com/lulabtechnology/saas-clinicas/internal/domain"

type CatalogResponse struct {
	Services      []domain.Service      `json:"services"`
	Professionals []domain.Professional `json:"professionals"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0"`
	PriceCents      int64  `json:"priceCents" binding:"gte=0"`
}

type CreateProfessionalRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Specialty string `json:"specialty"`
}

type CreateRuleRequest struct {
	ProfessionalID  int64  `json:"professionalId" binding:"required"`
	Weekday         int    `json:"weekday" binding:"gte=0,lte=6"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	SlotSizeMinutes int    `json:"slotSizeMinutes" binding:"required,gt=0"`
}

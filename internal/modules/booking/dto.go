package booking

import "github.com/lulabtechnology/saas-clinicas/internal/domain"

type ReserveRequest struct {
	TenantSlug     string `json:"slug" binding:"required"`
	ServiceID      int64  `json:"serviceId" binding:"required"`
	ProfessionalID int64  `json:"professionalId" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM, tenant-local
	PatientName    string `json:"patientName" binding:"required"`
	PatientPhone   string `json:"patientPhone" binding:"required"`
	Prepay         bool   `json:"prepay"`
}

type ReserveResult struct {
	Booking       *domain.Booking
	PaymentStatus domain.PaymentStatus // empty when prepay was not requested
	PaymentError  string               // set when the prepay attempt failed; booking stays pending
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

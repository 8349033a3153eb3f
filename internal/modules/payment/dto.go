package payment

type CreateIntentRequest struct {
	BookingID int64 `json:"bookingId" binding:"required"`
}

type ConfirmRequest struct {
	IntentID string `json:"intentId" binding:"required"`
}

type IntentResponse struct {
	IntentID string `json:"intentId"`
	Status   string `json:"status"`
}

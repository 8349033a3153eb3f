package domain

import "time"

type PaymentStatus string

const (
	PaymentRequiresPayment PaymentStatus = "requires_payment"
	PaymentSucceeded       PaymentStatus = "succeeded"
	PaymentFailed          PaymentStatus = "failed"
	PaymentRefunded        PaymentStatus = "refunded"
)

// Payment is one payment attempt. ID doubles as the provider intent id; a
// booking may accumulate several rows over retries and refunds.
type Payment struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	TenantID    int64         `json:"tenant_id"`
	BookingID   int64         `json:"booking_id"`
	AmountCents int64         `json:"amount_cents"`
	Provider    string        `json:"provider"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

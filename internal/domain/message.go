package domain

import "time"

type MessageType string

const (
	MessageConfirmation MessageType = "confirmation"
	MessageReminder     MessageType = "reminder"
)

type MessageStatus string

const (
	MessageQueued MessageStatus = "queued"
	MessageSent   MessageStatus = "sent"
	MessageFailed MessageStatus = "failed"
)

// Message is a queued outbound notification. A dispatcher picks up due rows
// in status queued and hands them to the messaging provider.
type Message struct {
	ID          int64         `json:"id"`
	TenantID    int64         `json:"tenant_id"`
	BookingID   int64         `json:"booking_id"`
	Provider    string        `json:"provider"`
	Type        MessageType   `json:"type"`
	Status      MessageStatus `json:"status"`
	HoursBefore int           `json:"hours_before,omitempty"` // reminders only
	ToSendAt    time.Time     `json:"to_send_at"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
	Preview     string        `json:"preview,omitempty" gorm:"type:text"`
	LastError   string        `json:"last_error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

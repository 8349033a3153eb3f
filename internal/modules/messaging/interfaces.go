package messaging

import (
	"context"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

// Provider queues and delivers outbound patient notifications. Enqueue calls
// only write rows; actual delivery happens when the dispatcher calls Send on
// a due message.
type Provider interface {
	EnqueueConfirmation(ctx context.Context, bookingID int64) (int64, error)
	ScheduleReminder(ctx context.Context, bookingID int64, dueAt time.Time, hoursBefore int) (int64, error)
	Send(ctx context.Context, messageID int64) error
}

type messageRepo interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	DueMessages(ctx context.Context, now time.Time, limit int) ([]domain.Message, error)
	MarkSent(ctx context.Context, id int64, preview string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int64, lastError string) error
}

type contextReader interface {
	GetMessageContext(ctx context.Context, bookingID int64) (*repository.MessageContext, error)
}

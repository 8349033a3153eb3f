package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// DueMessages returns up to limit queued messages whose due time has passed,
// oldest first.
func (r *MessageRepository) DueMessages(ctx context.Context, now time.Time, limit int) ([]domain.Message, error) {
	var rows []domain.Message
	err := r.db.WithContext(ctx).
		Where("status = ? AND to_send_at <= ?", domain.MessageQueued, now).
		Order("to_send_at").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *MessageRepository) MarkSent(ctx context.Context, id int64, preview string, sentAt time.Time) error {
	tx := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": domain.MessageSent, "preview": preview, "sent_at": &sentAt})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MessageRepository) MarkFailed(ctx context.Context, id int64, lastError string) error {
	return r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": domain.MessageFailed, "last_error": lastError}).Error
}

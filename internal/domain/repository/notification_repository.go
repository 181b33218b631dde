package repository

import (
	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUser(db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	MarkRead(db *gorm.DB, userID, id uuid.UUID) (int64, error)
}

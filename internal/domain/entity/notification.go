package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies in-app notifications
type NotificationKind string

const (
	NotificationInvoiceGenerated  NotificationKind = "invoice.generated"
	NotificationAgreedCancel      NotificationKind = "appointment.agreed_cancel"
	NotificationAppointmentToday  NotificationKind = "appointment.today"
)

// Notification is an in-app notification delivered to a clinic user
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(50);not null" json:"kind"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Body      string           `gorm:"type:text" json:"body,omitempty"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// IsRead reports whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

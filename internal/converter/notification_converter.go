package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// NotificationsToResponses converts a slice of Notification entities to
// slice of NotificationResponse DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = dto.NotificationResponse{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Body:      n.Body,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		}
	}
	return responses
}

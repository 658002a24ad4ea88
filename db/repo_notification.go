package db

import (
	"context"

	"github.com/Archiit19/equipment-lending/models"

	"github.com/google/uuid"
)

// Notifications

func (r *Repo) CreateNotification(ctx context.Context, userID, title, message string) error {
	n := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *Repo) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var ns []models.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ns).Error
	return ns, err
}

// MarkNotificationRead is scoped to the owner so one user cannot touch
// another's notifications.
func (r *Repo) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

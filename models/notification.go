package models

import "time"

const NotificationTable = "lend_notifications"

// Notification is a persisted in-app message (overdue alerts and the like).
type Notification struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"type:uuid;index;not null" json:"userId"`
	Title   string `gorm:"size:200;not null" json:"title"`
	Message string `gorm:"size:1000;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Notification) TableName() string { return NotificationTable }

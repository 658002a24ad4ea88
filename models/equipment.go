package models

import "time"

const EquipmentTable = "lend_equipment"

// Equipment is a borrowable stock line. Quantity is the total owned units and is
// the ceiling every overlapping booking is checked against; only admins change it.
type Equipment struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"size:200;index;not null" json:"name"`
	Category    string `gorm:"size:100;index;not null" json:"category"`
	Condition   string `gorm:"size:50;not null;default:'good'" json:"condition"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	Description string `gorm:"size:1000" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }

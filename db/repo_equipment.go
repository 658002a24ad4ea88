package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Archiit19/equipment-lending/models"

	"gorm.io/gorm"
)

// Equipment

func (r *Repo) CreateEquipment(ctx context.Context, e *models.Equipment) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *Repo) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	var e models.Equipment
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repo) ListEquipment(ctx context.Context, q, category string) ([]models.Equipment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Equipment{}).Order("created_at DESC")
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	var items []models.Equipment
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// EquipmentAvailability is an equipment row annotated with its free quantity
// over a queried period.
type EquipmentAvailability struct {
	models.Equipment
	Available int `json:"available"`
}

// ListAvailableEquipment filters the listing down to items with at least one
// free unit over [start, end]. One availability scan per item; fine at school
// inventory sizes.
func (r *Repo) ListAvailableEquipment(ctx context.Context, q, category string, start, end time.Time) ([]EquipmentAvailability, error) {
	items, err := r.ListEquipment(ctx, q, category)
	if err != nil {
		return nil, err
	}
	out := make([]EquipmentAvailability, 0, len(items))
	for _, it := range items {
		a, err := r.ComputeAvailableQuantity(ctx, it.ID, it.Quantity, start, end)
		if err != nil {
			return nil, err
		}
		if a.Available > 0 {
			out = append(out, EquipmentAvailability{Equipment: it, Available: a.Available})
		}
	}
	return out, nil
}

func (r *Repo) UpdateEquipment(ctx context.Context, id string, e *models.Equipment) (*models.Equipment, error) {
	res := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        e.Name,
			"category":    e.Category,
			"condition":   e.Condition,
			"quantity":    e.Quantity,
			"description": e.Description,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindEquipmentByID(ctx, id)
}

var ErrHasActiveRequests = errors.New("equipment has active requests")

// DeleteEquipment refuses to remove an item that still has requested, approved
// or issued bookings against it.
func (r *Repo) DeleteEquipment(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.Request{}).
			Where("item_id = ? AND status IN ?", id, models.ActiveStatuses).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrHasActiveRequests
		}
		res := tx.Delete(&models.Equipment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Archiit19/equipment-lending/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is the result of an on-demand scan over capacity-holding
// requests. Computed from the authoritative request set every time instead of
// a running counter, so there is nothing to drift or reconcile.
type Availability struct {
	Booked    int `json:"booked"`
	Available int `json:"available"`
}

// ComputeAvailableQuantity sums the quantities of approved/issued requests on
// the item whose [start_date, end_date] overlaps [start, end], inclusive on
// both ends. totalQty is caller-supplied so the caller can pin one consistent
// view of the item. A start after end simply matches nothing, validating the
// interval is the caller's job.
func (r *Repo) ComputeAvailableQuantity(ctx context.Context, itemID string, totalQty int, start, end time.Time) (Availability, error) {
	var booked int64
	err := r.DB.WithContext(ctx).Model(&models.Request{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("item_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			itemID, models.HoldingStatuses, end, start).
		Scan(&booked).Error
	if err != nil {
		return Availability{}, err
	}
	a := Availability{Booked: int(booked)}
	if totalQty > a.Booked {
		a.Available = totalQty - a.Booked
	}
	return a, nil
}

func (r *Repo) FindRequestByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests returns the requester's own requests, or everything when all is
// set (staff/admin listing). Newest first.
func (r *Repo) ListRequests(ctx context.Context, requesterID string, all bool) ([]models.Request, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Request{}).Order("created_at DESC")
	if !all {
		tx = tx.Where("requester_id = ?", requesterID)
	}
	var reqs []models.Request
	if err := tx.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

type CreateRequestInput struct {
	ItemID      string
	RequesterID string
	Quantity    int
	StartDate   time.Time
	EndDate     time.Time
}

// CreateRequest inserts a new request in status "requested" after an advisory
// availability check. "requested" holds no capacity, so a race here costs
// nothing; the binding check happens at approval.
func (r *Repo) CreateRequest(ctx context.Context, in CreateRequestInput) (*models.Request, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidInterval
	}
	item, err := r.FindEquipmentByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	a, err := r.ComputeAvailableQuantity(ctx, item.ID, item.Quantity, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.Quantity > a.Available {
		return nil, &CapacityError{Available: a.Available}
	}

	req := &models.Request{
		ID:          uuid.NewString(),
		ItemID:      item.ID,
		RequesterID: in.RequesterID,
		Quantity:    in.Quantity,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      models.StatusRequested,
	}
	if err := r.DB.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// approveQuery flips requested -> approved only while the quantity still fits
// under the equipment total minus every overlapping approved/issued hold, all
// in one conditional UPDATE. The subquery references the target row's own
// item and interval, so whichever of two conflicting approvals lands second
// sees the first one's quantity as booked.
var approveQuery = fmt.Sprintf(`
	UPDATE %[1]s SET status = ?, decision_maker = ?, updated_at = ?
	WHERE id = ? AND status = ?
	  AND quantity <= (SELECT e.quantity FROM %[2]s e WHERE e.id = %[1]s.item_id)
	    - COALESCE((
	        SELECT SUM(h.quantity) FROM %[1]s h
	        WHERE h.item_id = %[1]s.item_id
	          AND h.status IN (?, ?)
	          AND h.start_date <= %[1]s.end_date
	          AND h.end_date >= %[1]s.start_date
	      ), 0)
`, models.RequestTable, models.EquipmentTable)

// ApproveRequest re-runs the availability check and advances the status as one
// atomic conditional update. The equipment row is touched first inside the
// transaction so concurrent approvals on the same item serialize on its row
// lock instead of both reading a stale booked sum.
func (r *Repo) ApproveRequest(ctx context.Context, requestID, decidedBy string) (*models.Request, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.Request
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Per-item serialization point.
		lock := tx.Model(&models.Equipment{}).
			Where("id = ?", req.ItemID).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if lock.Error != nil {
			return lock.Error
		}
		if lock.RowsAffected == 0 {
			return ErrNotFound
		}

		res := tx.Exec(approveQuery,
			models.StatusApproved, decidedBy, time.Now().UTC(),
			requestID, models.StatusRequested,
			models.StatusApproved, models.StatusIssued)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// Guard failed: work out which one, nothing was modified.
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}
		if req.Status != models.StatusRequested {
			return &TransitionError{Action: models.ActionApprove, Status: req.Status}
		}
		txRepo := &Repo{DB: tx}
		item, err := txRepo.FindEquipmentByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		a, err := txRepo.ComputeAvailableQuantity(ctx, req.ItemID, item.Quantity, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		return &CapacityError{Available: a.Available}
	})
	if err != nil {
		return nil, err
	}
	return r.FindRequestByID(ctx, requestID)
}

// transition runs a conditional UPDATE keyed on the action's allowed "from"
// statuses. Status and its companion fields land in the same statement, so a
// failed guard can never leave a partial write behind.
func (r *Repo) transition(ctx context.Context, id, action string, updates map[string]interface{}) (*models.Request, error) {
	res := r.DB.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status IN ?", id, models.AllowedFrom(action)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		req, err := r.FindRequestByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &TransitionError{Action: action, Status: req.Status}
	}
	return r.FindRequestByID(ctx, id)
}

func (r *Repo) RejectRequest(ctx context.Context, requestID, decidedBy string) (*models.Request, error) {
	return r.transition(ctx, requestID, models.ActionReject, map[string]interface{}{
		"status":         models.StatusRejected,
		"decision_maker": decidedBy,
	})
}

func (r *Repo) IssueRequest(ctx context.Context, requestID, decidedBy string) (*models.Request, error) {
	return r.transition(ctx, requestID, models.ActionIssue, map[string]interface{}{
		"status":         models.StatusIssued,
		"issued_at":      time.Now().UTC(),
		"decision_maker": decidedBy,
	})
}

func (r *Repo) ReturnRequest(ctx context.Context, requestID, decidedBy string) (*models.Request, error) {
	return r.transition(ctx, requestID, models.ActionReturn, map[string]interface{}{
		"status":         models.StatusReturned,
		"returned_at":    time.Now().UTC(),
		"decision_maker": decidedBy,
	})
}

// RunOverdueSweep promotes issued requests past their end date to overdue and
// writes one notification for the requester plus one per staff/admin user.
// Notification failures are logged, never rolled into the transition. Running
// the sweep again finds the promoted requests already overdue and skips them.
func (r *Repo) RunOverdueSweep(ctx context.Context, now time.Time) (int, error) {
	var due []models.Request
	if err := r.DB.WithContext(ctx).
		Where("status = ? AND end_date < ?", models.StatusIssued, now).
		Find(&due).Error; err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	staff, err := r.ListPrivilegedUsers(ctx)
	if err != nil {
		log.Printf("overdue sweep: list staff: %v", err)
	}

	count := 0
	for _, req := range due {
		res := r.DB.WithContext(ctx).Model(&models.Request{}).
			Where("id = ? AND status = ?", req.ID, models.StatusIssued).
			Update("status", models.StatusOverdue)
		if res.Error != nil {
			return count, res.Error
		}
		if res.RowsAffected == 0 {
			// Returned between the scan and the update; nothing to do.
			continue
		}
		count++

		itemName := "item"
		if item, err := r.FindEquipmentByID(ctx, req.ItemID); err == nil {
			itemName = item.Name
		}
		requesterName := "A borrower"
		if u, err := r.FindUserByID(ctx, req.RequesterID); err == nil {
			requesterName = u.Name
		}

		if err := r.CreateNotification(ctx, req.RequesterID, "Overdue equipment",
			fmt.Sprintf("Your booking for %q is overdue. Please return it immediately.", itemName)); err != nil {
			log.Printf("overdue sweep: notify requester %s: %v", req.RequesterID, err)
		}
		for _, s := range staff {
			if err := r.CreateNotification(ctx, s.ID, "Overdue equipment",
				fmt.Sprintf("%s has not returned %q (due %s).", requesterName, itemName, req.EndDate.Format("2006-01-02"))); err != nil {
				log.Printf("overdue sweep: notify %s: %v", s.ID, err)
			}
		}
	}
	return count, nil
}

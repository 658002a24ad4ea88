package models

import (
	"fmt"
	"time"
)

const RequestTable = "lend_requests"

// Status is a closed enumeration; unknown values are rejected at the boundary
// with ParseStatus instead of being written through.
type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusIssued    Status = "issued"
	StatusReturned  Status = "returned"
	StatusRejected  Status = "rejected"
	StatusOverdue   Status = "overdue"
)

// HoldingStatuses are the statuses that reserve capacity against the equipment
// total. A plain "requested" is a soft hold only, enforced at approval time.
var HoldingStatuses = []Status{StatusApproved, StatusIssued}

// ActiveStatuses block deletion of the referenced equipment.
var ActiveStatuses = []Status{StatusRequested, StatusApproved, StatusIssued}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusRequested, StatusApproved, StatusIssued, StatusReturned, StatusRejected, StatusOverdue:
		return st, nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// Terminal statuses permit no further transitions.
func (s Status) Terminal() bool { return s == StatusReturned || s == StatusRejected }

// Staff/admin actions on a request.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionIssue   = "issue"
	ActionReturn  = "return"
)

// allowedFrom is the transition table: the statuses each action may start from.
// The overdue promotion is not listed here, it is owned by the sweep.
var allowedFrom = map[string][]Status{
	ActionApprove: {StatusRequested},
	ActionReject:  {StatusRequested, StatusApproved},
	ActionIssue:   {StatusApproved},
	ActionReturn:  {StatusIssued, StatusOverdue},
}

func AllowedFrom(action string) []Status { return allowedFrom[action] }

func CanTransition(action string, from Status) bool {
	for _, s := range allowedFrom[action] {
		if s == from {
			return true
		}
	}
	return false
}

// Overlaps reports whether the closed day intervals [aStart,aEnd] and
// [bStart,bEnd] share at least one day. Both ends count: a booking ending on
// the query's start day is still a conflict (same-day handover is contested).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Request is one borrow request over a closed day interval. Requests are
// permanent records, there is no delete path.
type Request struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID      string    `gorm:"type:uuid;index;not null" json:"itemId"`
	RequesterID string    `gorm:"type:uuid;index;not null" json:"requesterId"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	StartDate   time.Time `gorm:"index;not null" json:"startDate"`
	EndDate     time.Time `gorm:"index;not null" json:"endDate"`
	Status      Status    `gorm:"size:20;index;not null;default:'requested'" json:"status"`

	DecisionMaker *string    `gorm:"type:uuid" json:"decisionMaker,omitempty"`
	IssuedAt      *time.Time `json:"issuedAt,omitempty"`
	ReturnedAt    *time.Time `json:"returnedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Request) TableName() string { return RequestTable }

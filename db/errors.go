package db

import (
	"errors"
	"fmt"

	"github.com/Archiit19/equipment-lending/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInterval = errors.New("endDate must be on or after startDate")
)

// CapacityError carries the remaining available count so the caller can retry
// with a smaller quantity or different dates.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d available for selected period", e.Available)
}

// TransitionError reports an action attempted from a status outside its
// allowed "from" set. The stored request is left untouched.
type TransitionError struct {
	Action string
	Status models.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a request in status %q", e.Action, e.Status)
}

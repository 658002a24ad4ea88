package models_test

import (
	"testing"
	"time"

	"github.com/Archiit19/equipment-lending/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
}

func Test_Overlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint_before", d(1, 1), d(1, 4), d(1, 10), d(1, 20), false},
		{"disjoint_after", d(1, 10), d(1, 20), d(1, 1), d(1, 4), false},
		{"contained", d(1, 5), d(1, 8), d(1, 1), d(1, 31), true},
		{"partial", d(1, 1), d(1, 10), d(1, 5), d(1, 15), true},
		{"shared_end_day_counts", d(1, 1), d(1, 5), d(1, 5), d(1, 10), true},
		{"shared_start_day_counts", d(1, 5), d(1, 10), d(1, 1), d(1, 5), true},
		{"single_day_equal", d(1, 5), d(1, 5), d(1, 5), d(1, 5), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, models.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, models.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func Test_ParseStatus(t *testing.T) {
	for _, s := range []string{"requested", "approved", "issued", "returned", "rejected", "overdue"} {
		st, err := models.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, models.Status(s), st)
	}

	for _, s := range []string{"", "REQUESTED", "pending", "cancelled"} {
		_, err := models.ParseStatus(s)
		assert.Error(t, err, "status %q should be rejected", s)
	}
}

func Test_Terminal(t *testing.T) {
	assert.True(t, models.StatusReturned.Terminal())
	assert.True(t, models.StatusRejected.Terminal())
	for _, s := range []models.Status{models.StatusRequested, models.StatusApproved, models.StatusIssued, models.StatusOverdue} {
		assert.False(t, s.Terminal(), "status %q is not terminal", s)
	}
}

func Test_CanTransition(t *testing.T) {
	all := []models.Status{
		models.StatusRequested, models.StatusApproved, models.StatusIssued,
		models.StatusReturned, models.StatusRejected, models.StatusOverdue,
	}
	legal := map[string][]models.Status{
		models.ActionApprove: {models.StatusRequested},
		models.ActionReject:  {models.StatusRequested, models.StatusApproved},
		models.ActionIssue:   {models.StatusApproved},
		models.ActionReturn:  {models.StatusIssued, models.StatusOverdue},
	}
	for action, froms := range legal {
		allowed := map[models.Status]bool{}
		for _, s := range froms {
			allowed[s] = true
		}
		for _, s := range all {
			assert.Equal(t, allowed[s], models.CanTransition(action, s), "%s from %s", action, s)
		}
	}

	// Terminal states allow nothing.
	for _, action := range []string{models.ActionApprove, models.ActionReject, models.ActionIssue, models.ActionReturn} {
		assert.False(t, models.CanTransition(action, models.StatusReturned))
		assert.False(t, models.CanTransition(action, models.StatusRejected))
	}
}

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens an in-memory SQLite database with the real migrations, so
// the aggregation and conditional-update SQL is exercised for real. One
// connection max: a second pooled connection would see a different :memory: db.
func newTestRepo(t *testing.T) *db.Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	return db.NewRepo(gdb)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, repo *db.Repo, name, role string) *models.User {
	t.Helper()
	u := &models.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: name + "@school.test",
		Role:  role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func seedItem(t *testing.T, repo *db.Repo, name string, qty int) *models.Equipment {
	t.Helper()
	e := &models.Equipment{
		ID:       uuid.NewString(),
		Name:     name,
		Category: "Lab",
		Quantity: qty,
	}
	require.NoError(t, repo.CreateEquipment(context.Background(), e))
	return e
}

func seedRequest(t *testing.T, repo *db.Repo, item *models.Equipment, requester *models.User, qty int, start, end time.Time) *models.Request {
	t.Helper()
	req, err := repo.CreateRequest(context.Background(), db.CreateRequestInput{
		ItemID:      item.ID,
		RequesterID: requester.ID,
		Quantity:    qty,
		StartDate:   start,
		EndDate:     end,
	})
	require.NoError(t, err)
	return req
}

// forceStatus writes a status directly, bypassing the guards, to set up
// illegal-transition cases.
func forceStatus(t *testing.T, repo *db.Repo, id string, s models.Status) {
	t.Helper()
	require.NoError(t, repo.DB.Model(&models.Request{}).Where("id = ?", id).Update("status", s).Error)
}

func storedStatus(t *testing.T, repo *db.Repo, id string) models.Status {
	t.Helper()
	req, err := repo.FindRequestByID(context.Background(), id)
	require.NoError(t, err)
	return req.Status
}

package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Archiit19/equipment-lending/controllers"
	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	repo   *db.Repo
	// identity injected in place of the session middleware
	userID string
	role   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	env := &testEnv{repo: db.NewRepo(gdb)}
	s := &controllers.Srv{Repo: env.repo}
	rc := controllers.NewRequestController(s)

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("userID", env.userID)
		c.Set("role", env.role)
	}
	r.POST("/api/requests", fakeAuth, rc.Create)
	r.GET("/api/requests", fakeAuth, rc.List)
	r.PATCH("/api/requests/:id/approve", fakeAuth, rc.Approve)
	r.PATCH("/api/requests/:id/issue", fakeAuth, rc.Issue)
	env.router = r
	return env
}

func (e *testEnv) as(userID, role string) { e.userID = userID; e.role = role }

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func seedLendingFixture(t *testing.T, repo *db.Repo) (item *models.Equipment, borrower, staff *models.User) {
	t.Helper()
	ctx := context.Background()
	item = &models.Equipment{ID: uuid.NewString(), Name: "Microscope", Category: "Lab", Quantity: 5}
	require.NoError(t, repo.CreateEquipment(ctx, item))
	borrower = &models.User{ID: uuid.NewString(), Name: "mina", Email: "mina@school.test", Role: models.RoleStudent}
	require.NoError(t, repo.CreateUser(ctx, borrower))
	staff = &models.User{ID: uuid.NewString(), Name: "omar", Email: "omar@school.test", Role: models.RoleStaff}
	require.NoError(t, repo.CreateUser(ctx, staff))
	return item, borrower, staff
}

func Test_CreateRequest_HTTP(t *testing.T) {
	env := newTestEnv(t)
	item, borrower, _ := seedLendingFixture(t, env.repo)
	env.as(borrower.ID, borrower.Role)

	w, out := env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 2, "startDate": "2026-03-01", "endDate": "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "requested", out["status"])
	assert.Equal(t, borrower.ID, out["requesterId"])

	// Bad interval is rejected up front.
	w, out = env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 1, "startDate": "2026-03-10", "endDate": "2026-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, out["error"], "startDate")
}

func Test_CapacityError_SurfacesAvailableCount(t *testing.T) {
	env := newTestEnv(t)
	item, borrower, staff := seedLendingFixture(t, env.repo)

	env.as(borrower.ID, borrower.Role)
	w, out := env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 3, "startDate": "2026-03-01", "endDate": "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reqID := out["id"].(string)

	env.as(staff.ID, staff.Role)
	w, _ = env.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%s/approve", reqID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 3 of 5 held; asking for 3 more over the same period must name the real
	// remainder so the borrower can retry with less.
	env.as(borrower.ID, borrower.Role)
	w, out = env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 3, "startDate": "2026-03-05", "endDate": "2026-03-08",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "only 2 available for selected period", out["error"])
	assert.Equal(t, float64(2), out["available"])
}

func Test_ApproveTwice_IsInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	item, borrower, staff := seedLendingFixture(t, env.repo)

	env.as(borrower.ID, borrower.Role)
	_, out := env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 1, "startDate": "2026-03-01", "endDate": "2026-03-02",
	})
	reqID := out["id"].(string)

	env.as(staff.ID, staff.Role)
	w, _ := env.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%s/approve", reqID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = env.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%s/approve", reqID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, out["error"], "approved")
}

func Test_ListRequests_OwnVsAll(t *testing.T) {
	env := newTestEnv(t)
	item, borrower, staff := seedLendingFixture(t, env.repo)

	otherID := uuid.NewString()
	require.NoError(t, env.repo.CreateUser(context.Background(), &models.User{
		ID: otherID, Name: "jo", Email: "jo@school.test", Role: models.RoleStudent,
	}))

	env.as(borrower.ID, borrower.Role)
	w, _ := env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 1, "startDate": "2026-03-01", "endDate": "2026-03-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	env.as(otherID, models.RoleStudent)
	w, _ = env.do(t, http.MethodPost, "/api/requests", gin.H{
		"itemId": item.ID, "quantity": 1, "startDate": "2026-03-01", "endDate": "2026-03-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	_, out := env.do(t, http.MethodGet, "/api/requests", nil)
	assert.Len(t, out["requests"], 1, "students see only their own")

	// all=true is ignored for students…
	_, out = env.do(t, http.MethodGet, "/api/requests?all=true", nil)
	assert.Len(t, out["requests"], 1)

	// …and honored for staff.
	env.as(staff.ID, staff.Role)
	_, out = env.do(t, http.MethodGet, "/api/requests?all=true", nil)
	assert.Len(t, out["requests"], 2)
}

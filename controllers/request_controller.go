package controllers

import (
	"context"
	"net/http"

	"github.com/Archiit19/equipment-lending/app"
	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

type createRequestInput struct {
	ItemID    string `json:"itemId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// POST /api/requests
func (rc *RequestController) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in createRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	start, err1 := parseDay(in.StartDate)
	end, err2 := parseDay(in.EndDate)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "startDate and endDate must be YYYY-MM-DD"})
		return
	}

	req, err := rc.Repo.CreateRequest(c.Request.Context(), db.CreateRequestInput{
		ItemID:      in.ItemID,
		RequesterID: uid,
		Quantity:    in.Quantity,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GET /api/requests (own) or ?all=true (staff/admin)
func (rc *RequestController) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	role := currentRole(c)
	all := c.Query("all") == "true" && (role == models.RoleStaff || role == models.RoleAdmin)

	reqs, err := rc.Repo.ListRequests(c.Request.Context(), uid, all)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"requests": reqs})
}

// The four decision actions share a shape: resolve the actor, run the guarded
// transition, map errors.

// PATCH /api/requests/:id/approve (staff/admin)
func (rc *RequestController) Approve(c *gin.Context) {
	rc.decide(c, rc.Repo.ApproveRequest)
}

// PATCH /api/requests/:id/reject (staff/admin)
func (rc *RequestController) Reject(c *gin.Context) {
	rc.decide(c, rc.Repo.RejectRequest)
}

// PATCH /api/requests/:id/issue (staff/admin)
func (rc *RequestController) Issue(c *gin.Context) {
	rc.decide(c, rc.Repo.IssueRequest)
}

// PATCH /api/requests/:id/return (staff/admin)
func (rc *RequestController) Return(c *gin.Context) {
	rc.decide(c, rc.Repo.ReturnRequest)
}

func (rc *RequestController) decide(c *gin.Context, action func(ctx context.Context, requestID, decidedBy string) (*models.Request, error)) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	req, err := action(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/Archiit19/equipment-lending/app"
	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

type equipmentInput struct {
	Name        string `json:"name" binding:"required,min=2"`
	Category    string `json:"category" binding:"required"`
	Condition   string `json:"condition"`
	Quantity    *int   `json:"quantity" binding:"required"`
	Description string `json:"description"`
}

// GET /api/equipment?q=&category=&availableOnly=true&startDate=&endDate=
func (ec *EquipmentController) List(c *gin.Context) {
	q := c.Query("q")
	category := c.Query("category")

	if c.Query("availableOnly") == "true" {
		start, err1 := parseDay(c.Query("startDate"))
		end, err2 := parseDay(c.Query("endDate"))
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "availableOnly needs startDate and endDate as YYYY-MM-DD"})
			return
		}
		items, err := ec.Repo.ListAvailableEquipment(c.Request.Context(), q, category, start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.H{"items": items})
		return
	}

	items, err := ec.Repo.ListEquipment(c.Request.Context(), q, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// POST /api/equipment (admin)
func (ec *EquipmentController) Create(c *gin.Context) {
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if *in.Quantity < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must be non-negative"})
		return
	}
	if in.Condition == "" {
		in.Condition = "good"
	}
	e := &models.Equipment{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Condition:   in.Condition,
		Quantity:    *in.Quantity,
		Description: in.Description,
	}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GET /api/equipment/:id
func (ec *EquipmentController) Get(c *gin.Context) {
	item, err := ec.Repo.FindEquipmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// PUT /api/equipment/:id (admin)
func (ec *EquipmentController) Update(c *gin.Context) {
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if *in.Quantity < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must be non-negative"})
		return
	}
	if in.Condition == "" {
		in.Condition = "good"
	}
	updated, err := ec.Repo.UpdateEquipment(c.Request.Context(), c.Param("id"), &models.Equipment{
		Name:        in.Name,
		Category:    in.Category,
		Condition:   in.Condition,
		Quantity:    *in.Quantity,
		Description: in.Description,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/equipment/:id (admin)
func (ec *EquipmentController) Delete(c *gin.Context) {
	err := ec.Repo.DeleteEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrHasActiveRequests) {
			c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete: equipment has active requests"})
			return
		}
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/equipment/:id/availability?startDate=&endDate=
// Advisory pre-check for the request form; the binding check runs at approval.
func (ec *EquipmentController) Availability(c *gin.Context) {
	start, err1 := parseDay(c.Query("startDate"))
	end, err2 := parseDay(c.Query("endDate"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "startDate and endDate are required as YYYY-MM-DD"})
		return
	}
	item, err := ec.Repo.FindEquipmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	a, err := ec.Repo.ComputeAvailableQuantity(c.Request.Context(), item.ID, item.Quantity, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Archiit19/equipment-lending/app"
	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    db.NewRepo(a.DB),
		AppSess: a.AppSessions(),
		Cfg:     a.Config,
	}
}

// --- helpers ---

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

func currentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role
}

// writeRepoError maps the repo error taxonomy onto HTTP responses. Capacity
// and transition errors surface their actionable detail; a plain 500 would
// leave the borrower with nothing to act on.
func writeRepoError(c *gin.Context, err error) {
	var capErr *db.CapacityError
	var trErr *db.TransitionError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.As(err, &capErr):
		c.JSON(http.StatusBadRequest, app.H{"error": capErr.Error(), "available": capErr.Available})
	case errors.As(err, &trErr):
		c.JSON(http.StatusBadRequest, app.H{"error": trErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// parseDay reads a YYYY-MM-DD value as a UTC day boundary. All interval math
// in the portal happens on UTC midnights.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

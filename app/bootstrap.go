package app

import (
	"context"
	"log"

	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/google/uuid"
)

// BootstrapFirstAdmin seeds an admin user from BOOTSTRAP_ADMIN_EMAIL when the
// user table has none, so a fresh deployment can be administered at all.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap: count admins: %v", err)
		return
	}
	if n > 0 {
		return
	}

	u := &models.User{
		ID:    uuid.NewString(),
		Name:  cfg.BootstrapName,
		Email: cfg.BootstrapEmail,
		Role:  models.RoleAdmin,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap: create admin failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] No admin found, created %s as the first admin", cfg.BootstrapEmail)
}

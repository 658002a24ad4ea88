package main

import (
	"context"
	"log"
	"os"

	"github.com/Archiit19/equipment-lending/app"
	"github.com/Archiit19/equipment-lending/config"
	"github.com/Archiit19/equipment-lending/db"
	"github.com/Archiit19/equipment-lending/jobs"
	"github.com/Archiit19/equipment-lending/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router
	repo := db.NewRepo(application.DB)

	// Health
	r.GET("/api/health", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.BootstrapFirstAdmin(ctx, application.Config, repo)

	if application.Config.SweepEnabled {
		jobs.NewSweeper(repo, application.Config.SweepInterval).Start(ctx)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}

package main

import (
	"log"

	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/router"
)

func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB)

	if err := api.Users().EnsureRootAdmin(cfg.RootAdminUsername, cfg.RootAdminPassword); err != nil {
		log.Fatalf("failed to ensure root admin: %v", err)
	}

	r := router.Setup(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

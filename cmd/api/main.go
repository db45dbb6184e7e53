package main

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pitwall/internal/auth"
	"pitwall/internal/config"
	"pitwall/internal/entry"
	"pitwall/internal/models"
	"pitwall/internal/roster"
	"pitwall/internal/storage"
	"pitwall/internal/store"

	"pitwall/internal/api/handlers"
	apiserver "pitwall/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Pitwall API Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Roster: built-in defaults unless a users file is configured
	defaultUsers := roster.Defaults
	if cfg.Data.UsersFile != "" {
		users, err := roster.Load(cfg.Data.UsersFile)
		if err != nil {
			log.Fatalf("Failed to load roster %s: %v", cfg.Data.UsersFile, err)
		}
		log.Printf("Roster loaded: %d users from %s", len(users), cfg.Data.UsersFile)
		defaultUsers = func() []models.User { return users }
	}

	// 3. Document store: one Load at boot ensures the data file exists
	st := store.New(cfg.Data.File, cfg.Data.ProjectName, defaultUsers)
	if _, err := st.Load(); err != nil {
		log.Fatalf("Failed to initialize data file: %v", err)
	}

	// 4. Entry lifecycle
	policy := entry.Policy{MaintainerRoles: cfg.MaintainerRoleList()}
	manager := entry.NewManager(st, policy)

	// 5. Upload storage
	storageClient := storage.New(cfg)

	// 6. Sessions
	sessions := auth.New(cfg.Auth.Secret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)

	// 7. Metrics
	handlers.RegisterMetrics()
	store.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsAddr)
		if err := http.ListenAndServe(cfg.Server.MetricsAddr, nil); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	// 8. Start Server
	srv := apiserver.New(cfg, st, manager, storageClient, sessions)

	log.Printf("API Server starting on %s", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

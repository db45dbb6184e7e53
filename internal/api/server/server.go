package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pitwall/internal/auth"
	"pitwall/internal/config"
	"pitwall/internal/entry"
	"pitwall/internal/storage"
	"pitwall/internal/store"

	"pitwall/internal/api/handlers"
	"pitwall/internal/api/middleware"
)

type Server struct {
	cfg      *config.Config
	store    *store.Store
	manager  *entry.Manager
	storage  *storage.Client
	sessions *auth.Sessions
	router   *gin.Engine
}

func New(cfg *config.Config, st *store.Store, manager *entry.Manager, storageClient *storage.Client, sessions *auth.Sessions) *Server {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		manager:  manager,
		storage:  storageClient,
		sessions: sessions,
		router:   gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	authHandler := handlers.NewAuthHandler(s.store, s.sessions)
	stateHandler := handlers.NewStateHandler(s.store)
	entryHandler := handlers.NewEntryHandler(s.manager, s.storage)
	reportHandler := handlers.NewReportHandler(s.manager)
	uploadHandler := handlers.NewUploadHandler(s.storage, s.cfg.Upload.MaxSizeMB*1024*1024)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "pitwall"})
	})

	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// PUBLIC ROUTES (No Session Required)
		// ==========================================
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/whoami", middleware.OptionalAuth(s.sessions), authHandler.Whoami)

		// The whole document stays readable without a session (the original
		// deployment worked that way); passwords are stripped server-side.
		v1.GET("/state", stateHandler.GetState)

		v1.GET("/reports/summary", reportHandler.Summary)
		v1.GET("/reports/timeline", reportHandler.Timeline)
		v1.GET("/purchases", reportHandler.Purchases)

		v1.GET("/uploads/*key", uploadHandler.Serve)

		// ==========================================
		// PROTECTED ROUTES (Valid Session Required)
		// ==========================================
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(s.sessions))
		{
			protected.POST("/auth/logout", authHandler.Logout)

			// Export includes roster credentials, so it needs a session.
			protected.GET("/export", stateHandler.Export)

			protected.POST("/entries", entryHandler.Create)
			protected.PUT("/entries/:id", entryHandler.Update)
			protected.DELETE("/entries/:id", entryHandler.Delete)

			protected.POST("/entries/:id/purchase", entryHandler.MarkPurchased)
			protected.POST("/entries/:id/restock", entryHandler.Restock)

			protected.POST("/uploads", uploadHandler.Upload)
		}
	}
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the configured address
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

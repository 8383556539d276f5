package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wastex-backend/internal/admin"
	"wastex-backend/internal/ai"
	"wastex-backend/internal/auth"
	"wastex-backend/internal/bids"
	"wastex-backend/internal/config"
	"wastex-backend/internal/database"
	"wastex-backend/internal/health"
	"wastex-backend/internal/kyc"
	"wastex-backend/internal/listings"
	"wastex-backend/internal/middleware"
	"wastex-backend/internal/notifications"
	"wastex-backend/internal/pkg/keylock"
	"wastex-backend/internal/reports"
	"wastex-backend/internal/saved"
)

// CreateApp builds the Fiber app with all global middleware and routes, and
// returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             10 * 1024 * 1024, // image data URLs in listing bodies
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
	} else {
		db, err = database.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, nil, nil, err
	}

	// The AI oracle is optional: without a key the audit is skipped and
	// suggest-category reports the missing key.
	var assistant ai.Assistant
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Warn().Err(err).Msg("Gemini client unavailable, AI assist disabled")
		} else {
			assistant = gemini
		}
	}

	locks := keylock.New()

	listingsService := &listings.Service{DB: db, Locks: locks}
	bidsService := &bids.Service{DB: db, Locks: locks}
	authService := &auth.Service{DB: db}
	notificationsService := &notifications.Service{DB: db}
	kycService := &kyc.Service{DB: db}
	adminService := &admin.Service{DB: db}
	savedService := &saved.Service{DB: db, Listings: listingsService}
	reportsService := &reports.Service{DB: db}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	api := app.Group("/api")

	authHandlers := &auth.Handlers{Service: authService, Rdb: rdb, Config: sessionCfg}
	api.Post("/auth/register", authHandlers.Register)
	api.Post("/auth/login", authHandlers.Login)
	api.Get("/auth/me", authHandlers.Me)
	api.Delete("/auth/logout", authHandlers.Logout)

	listingsHandlers := &listings.Handlers{
		Service: listingsService,
		Auditor: &ai.Auditor{Assistant: assistant, Listings: listingsService},
	}
	api.Get("/listings", listingsHandlers.Search)
	api.Get("/listings/:id", listingsHandlers.GetByID)
	api.Post("/listings", listingsHandlers.Create)
	api.Patch("/listings/:id/status", listingsHandlers.UpdateStatus)

	bidsHandlers := &bids.Handlers{Service: bidsService}
	api.Post("/bids", bidsHandlers.PlaceBid)
	api.Get("/listings/:id/bids", bidsHandlers.ListBids)

	aiHandlers := &ai.Handlers{Assistant: assistant}
	api.Post("/ai/suggest-category", aiHandlers.SuggestCategory)

	notificationsHandlers := &notifications.Handlers{Service: notificationsService}
	api.Get("/notifications/:userId", notificationsHandlers.ListForUser)
	api.Patch("/notifications/:id/read", notificationsHandlers.MarkRead)

	kycHandlers := &kyc.Handlers{Service: kycService}
	api.Post("/kyc/upload", kycHandlers.Upload)

	savedHandlers := &saved.Handlers{Service: savedService}
	api.Get("/saved-listings/:userId", savedHandlers.ListForUser)
	api.Post("/saved-listings", savedHandlers.Save)
	api.Delete("/saved-listings/:userId/:listingId", savedHandlers.Remove)

	reportsHandlers := &reports.Handlers{Service: reportsService}
	api.Post("/reports", reportsHandlers.Create)

	adminHandlers := &admin.Handlers{Service: adminService}
	adminGroup := api.Group("/admin", middleware.RequireAdmin())
	adminGroup.Get("/users", adminHandlers.ListUsers)
	adminGroup.Post("/users/:id/block", adminHandlers.SetBlocked)
	adminGroup.Get("/kyc", kycHandlers.Queue)
	adminGroup.Post("/kyc/:id/approve", kycHandlers.Approve)
	adminGroup.Post("/kyc/:id/reject", kycHandlers.Reject)
	adminGroup.Get("/reports", adminHandlers.PendingReports)

	return app, db, rdb, nil
}

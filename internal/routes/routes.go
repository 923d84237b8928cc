package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/handlers"
	"github.com/phyn2-2/veritas-phase1/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	submissionHandler *handlers.SubmissionHandler,
	adminHandler *handlers.AdminHandler,
	assetHandler *handlers.AssetHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Public
	api.Get("/health", healthHandler.Check)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/assets", assetHandler.ListVerified)

	// Authenticated: token checked, then the user row re-read from storage.
	authed := api.Group("/submissions", middleware.Protected(cfg), middleware.LoadUser(db))
	authed.Post("/", submissionHandler.Create)
	authed.Get("/mine", submissionHandler.ListMine)
	authed.Get("/:id", submissionHandler.Get)

	// Admin: same chain plus a fresh is_admin check per request.
	admin := api.Group("/admin", middleware.Protected(cfg), middleware.LoadUser(db), middleware.AdminRequired())
	admin.Get("/pending", adminHandler.ListPending)
	admin.Post("/verify/:id", adminHandler.Verify)
}

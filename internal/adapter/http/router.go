package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type RouterDeps struct {
	Catalog        interfaces.CatalogService
	Identity       interfaces.IdentityService
	Settings       interfaces.SettingsService
	Storage        interfaces.FileStorage
	Verifier       interfaces.TokenVerifier
	Checks         map[string]Pinger
	MaxUploadBytes int64
	Logger         logger.Logger
}

// NewRouter mounts every view under /api/v1, each gated by the tab it belongs
// to. Stored files are served publicly from /storage.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(deps.Logger))
	r.Use(RecoveryMiddleware(deps.Logger))

	NewStorageHandler(deps.Storage, deps.Logger).RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.Verifier, deps.Identity, deps.Logger))

			NewSessionHandler(deps.Identity, deps.Settings, deps.Checks, deps.Logger).RegisterRoutes(r)

			r.With(RequireTab(views.TabPOS)).Route("/pos", NewPOSHandler(deps.Catalog, deps.Logger).RegisterRoutes)
			r.With(RequireTab(views.TabKitchen)).Route("/kitchen", NewKitchenHandler(deps.Catalog, deps.Logger).RegisterRoutes)
			r.With(RequireTab(views.TabInventory)).Route("/inventory", NewInventoryHandler(deps.Catalog, deps.Logger).RegisterRoutes)
			r.With(RequireTab(views.TabMenu)).Route("/menu",
				NewMenuHandler(deps.Catalog, deps.MaxUploadBytes, deps.Logger).RegisterRoutes)
			r.With(RequireTab(views.TabManagement)).Route("/management",
				NewManagementHandler(deps.Catalog, deps.Settings, deps.Identity, deps.MaxUploadBytes, deps.Logger).RegisterRoutes)
		})
	})

	return r
}

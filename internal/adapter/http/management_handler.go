package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type ManagementHandler struct {
	catalog        interfaces.CatalogService
	settings       interfaces.SettingsService
	identity       interfaces.IdentityService
	maxUploadBytes int64
	logger         logger.Logger
}

func NewManagementHandler(
	catalog interfaces.CatalogService,
	settings interfaces.SettingsService,
	identity interfaces.IdentityService,
	maxUploadBytes int64,
	logger logger.Logger,
) *ManagementHandler {
	return &ManagementHandler{
		catalog:        catalog,
		settings:       settings,
		identity:       identity,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type UpdateSettingsRequest struct {
	BrandName   string `json:"brand_name" validate:"required,max=80"`
	TextColor   string `json:"text_color" validate:"required,hexcolor"`
	AccentColor string `json:"accent_color" validate:"required,hexcolor"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager kitchen customer"`
}

func (h *ManagementHandler) RegisterRoutes(r chi.Router) {
	r.Get("/report", h.Report)
	r.Put("/settings", h.UpdateSettings)
	r.Post("/settings/background", h.UploadBackground)

	r.Group(func(r chi.Router) {
		r.Use(RequireRole(domain.RoleAdmin))
		r.Get("/team", h.Team)
		r.Put("/team/{id}/role", h.SetRole)
	})
}

// Report works from the cached snapshots. A failed movement fetch only
// leaves the history stale.
func (h *ManagementHandler) Report(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.FetchMovements(r.Context()); err != nil {
		h.logger.Warn("movements_fetch_failed", "Report built from stale movements", middleware.GetReqID(r.Context()), nil, err)
	}
	respondJSON(w, http.StatusOK, views.BuildReport(h.catalog.Orders(), h.catalog.Ingredients(), h.catalog.Movements()))
}

func (h *ManagementHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.settings.Update(r.Context(), interfaces.UpdateSettingsCommand{
		BrandName:   req.BrandName,
		TextColor:   req.TextColor,
		AccentColor: req.AccentColor,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, "settings_update_failed", err)
		return
	}
	h.respondSettings(w)
}

func (h *ManagementHandler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	upload, closeFn, ok := readUpload(w, r, h.maxUploadBytes)
	if !ok {
		return
	}
	defer closeFn()

	if _, err := h.settings.SetBackground(r.Context(), *upload); err != nil {
		respondServiceError(w, r, h.logger, "background_upload_failed", err)
		return
	}
	h.respondSettings(w)
}

func (h *ManagementHandler) Team(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.identity.ListProfiles(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "team_list_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, views.BuildTeam(profiles))
}

func (h *ManagementHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req SetRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.identity.SetRole(r.Context(), profileID, domain.Role(req.Role)); err != nil {
		respondServiceError(w, r, h.logger, "role_update_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ManagementHandler) respondSettings(w http.ResponseWriter) {
	s := h.settings.Get()
	if s == nil {
		d := domain.DefaultSettings()
		s = &d
	}
	respondJSON(w, http.StatusOK, settingsResponse(*s))
}

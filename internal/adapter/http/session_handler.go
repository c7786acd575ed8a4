package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

// Pinger is anything health can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type SessionHandler struct {
	identity interfaces.IdentityService
	settings interfaces.SettingsService
	checks   map[string]Pinger
	logger   logger.Logger
}

func NewSessionHandler(identity interfaces.IdentityService, settings interfaces.SettingsService, checks map[string]Pinger, logger logger.Logger) *SessionHandler {
	return &SessionHandler{
		identity: identity,
		settings: settings,
		checks:   checks,
		logger:   logger,
	}
}

type SessionResponse struct {
	Subject string      `json:"subject,omitempty"`
	Email   string      `json:"email,omitempty"`
	Role    domain.Role `json:"role"`
	Guest   bool        `json:"guest"`
	Tabs    []views.Tab `json:"tabs"`
}

type SettingsResponse struct {
	BrandName          string `json:"brand_name"`
	TextColor          string `json:"text_color"`
	AccentColor        string `json:"accent_color"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/auth/signin-url", h.SignInURL)
	r.Get("/session", h.Session)
	r.Get("/navigation", h.Navigation)
	r.Get("/settings", h.Settings)
}

func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	result := map[string]string{}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("health_check_failed", name+" is unreachable", "", nil, err)
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":       http.StatusText(status),
		"dependencies": result,
	})
}

func (h *SessionHandler) SignInURL(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"url": h.identity.SignInURL()})
}

func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	respondJSON(w, http.StatusOK, SessionResponse{
		Subject: id.Subject,
		Email:   id.Email,
		Role:    id.Role,
		Guest:   id.IsGuest(),
		Tabs:    views.AllowedTabs(id.Role),
	})
}

func (h *SessionHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	respondJSON(w, http.StatusOK, views.BuildNavigation(id.Role, r.URL.Query().Get("tab")))
}

// Settings serves the cached branding, falling back to defaults until a row
// exists.
func (h *SessionHandler) Settings(w http.ResponseWriter, r *http.Request) {
	s := h.settings.Get()
	if s == nil {
		d := domain.DefaultSettings()
		s = &d
	}
	respondJSON(w, http.StatusOK, settingsResponse(*s))
}

func settingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		BrandName:          s.BrandName,
		TextColor:          s.TextColor,
		AccentColor:        s.AccentColor,
		BackgroundImageURL: s.BackgroundImageURL,
	}
}

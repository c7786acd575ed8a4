package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type KitchenHandler struct {
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewKitchenHandler(catalog interfaces.CatalogService, logger logger.Logger) *KitchenHandler {
	return &KitchenHandler{catalog: catalog, logger: logger}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending ready delivered"`
}

func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/board", h.Board)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
}

func (h *KitchenHandler) Board(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, views.BuildKitchenBoard(h.catalog.Orders()))
}

func (h *KitchenHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalog.UpdateOrderStatus(r.Context(), id, domain.Status(req.Status)); err != nil {
		respondServiceError(w, r, h.logger, "order_status_update_failed", err)
		return
	}

	respondJSON(w, http.StatusOK, views.BuildKitchenBoard(h.catalog.Orders()))
}

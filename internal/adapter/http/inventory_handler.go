package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type InventoryHandler struct {
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewInventoryHandler(catalog interfaces.CatalogService, logger logger.Logger) *InventoryHandler {
	return &InventoryHandler{catalog: catalog, logger: logger}
}

// Quantities are pointers so an explicit zero passes "required".
type IngredientRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Quantity    *float64 `json:"quantity" validate:"required,gte=0"`
	MinQuantity *float64 `json:"min_quantity" validate:"required,gte=0"`
	Unit        string   `json:"unit" validate:"required,max=20"`
}

type RestockRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/movements", h.Movements)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/restock", h.Restock)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, views.BuildInventory(h.catalog.Ingredients()))
}

func (h *InventoryHandler) Movements(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.FetchMovements(r.Context()); err != nil {
		respondServiceError(w, r, h.logger, "movements_fetch_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, views.BuildMovements(h.catalog.Movements(), h.catalog.Ingredients(), 0))
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.catalog.AddIngredient(r.Context(), req.command()); err != nil {
		respondServiceError(w, r, h.logger, "ingredient_create_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, views.BuildInventory(h.catalog.Ingredients()))
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req IngredientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalog.UpdateIngredient(r.Context(), id, req.command()); err != nil {
		respondServiceError(w, r, h.logger, "ingredient_update_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, views.BuildInventory(h.catalog.Ingredients()))
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteIngredient(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, "ingredient_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req RestockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalog.RestockIngredient(r.Context(), id, req.Amount); err != nil {
		respondServiceError(w, r, h.logger, "ingredient_restock_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, views.BuildInventory(h.catalog.Ingredients()))
}

func (req IngredientRequest) command() interfaces.IngredientCommand {
	return interfaces.IngredientCommand{
		Name:        req.Name,
		Quantity:    *req.Quantity,
		MinQuantity: *req.MinQuantity,
		Unit:        req.Unit,
	}
}

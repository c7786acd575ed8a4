package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type MenuHandler struct {
	catalog        interfaces.CatalogService
	maxUploadBytes int64
	logger         logger.Logger
}

func NewMenuHandler(catalog interfaces.CatalogService, maxUploadBytes int64, logger logger.Logger) *MenuHandler {
	return &MenuHandler{catalog: catalog, maxUploadBytes: maxUploadBytes, logger: logger}
}

type RecipeLineRequest struct {
	IngredientID int64   `json:"ingredient_id" validate:"required,gt=0"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
}

// Price accepts a JSON number or string; the domain checks it is positive.
type ProductRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Description string              `json:"description" validate:"required,max=500"`
	Price       decimal.Decimal     `json:"price"`
	ImageURL    string              `json:"image_url" validate:"omitempty,url"`
	Recipe      []RecipeLineRequest `json:"recipe" validate:"required,min=1,dive"`
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Put("/products/{id}", h.Update)
	r.Delete("/products/{id}", h.Delete)
	r.Post("/images", h.UploadImage)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, views.BuildMenu(h.catalog.Products(), h.catalog.Ingredients()))
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.catalog.AddProduct(r.Context(), req.command()); err != nil {
		respondServiceError(w, r, h.logger, "product_create_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, views.BuildMenu(h.catalog.Products(), h.catalog.Ingredients()))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalog.UpdateProduct(r.Context(), id, req.command()); err != nil {
		respondServiceError(w, r, h.logger, "product_update_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, views.BuildMenu(h.catalog.Products(), h.catalog.Ingredients()))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, "product_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores a product picture ahead of the product form submit.
func (h *MenuHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	upload, closeFn, ok := readUpload(w, r, h.maxUploadBytes)
	if !ok {
		return
	}
	defer closeFn()

	url, err := h.catalog.UploadImage(r.Context(), *upload)
	if err != nil {
		respondServiceError(w, r, h.logger, "image_upload_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (req ProductRequest) command() interfaces.ProductCommand {
	recipe := make([]domain.RecipeLine, len(req.Recipe))
	for i, line := range req.Recipe {
		recipe[i] = domain.RecipeLine{IngredientID: line.IngredientID, Quantity: line.Quantity}
	}
	return interfaces.ProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Recipe:      recipe,
	}
}

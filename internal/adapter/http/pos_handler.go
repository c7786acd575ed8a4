package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type POSHandler struct {
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewPOSHandler(catalog interfaces.CatalogService, logger logger.Logger) *POSHandler {
	return &POSHandler{catalog: catalog, logger: logger}
}

type CartLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type CartPreviewRequest struct {
	Items []CartLineRequest `json:"items" validate:"dive"`
}

type PlaceOrderRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,max=100"`
	Items        []CartLineRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	Status       domain.Status `json:"status"`
	Total        string        `json:"total"`
}

func (h *POSHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.Menu)
	r.Post("/cart/preview", h.PreviewCart)
	r.Post("/orders", h.PlaceOrder)
}

func (h *POSHandler) Menu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, views.BuildMenuBoard(h.catalog.Products(), h.catalog.Ingredients()))
}

func (h *POSHandler) PreviewCart(w http.ResponseWriter, r *http.Request) {
	var req CartPreviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondJSON(w, http.StatusOK, views.BuildCart(h.catalog.PreviewCart(toCartLines(req.Items))))
}

func (h *POSHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.catalog.AddOrder(r.Context(), interfaces.PlaceOrderCommand{
		CustomerName: req.CustomerName,
		Items:        toCartLines(req.Items),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, "order_creation_failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Total:        order.Total.StringFixed(2),
	})
}

func toCartLines(items []CartLineRequest) []interfaces.CartLineCommand {
	lines := make([]interfaces.CartLineCommand, len(items))
	for i, item := range items {
		lines[i] = interfaces.CartLineCommand{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

package views

import (
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type MenuCard struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	// Available is false when one unit already exceeds recorded stock.
	Available bool `json:"available"`
}

type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type Cart struct {
	Lines       []CartLine `json:"lines"`
	Total       string     `json:"total"`
	Warnings    []string   `json:"warnings"`
	CanCheckout bool       `json:"can_checkout"`
}

func BuildMenuBoard(products []domain.Product, ingredients []domain.Ingredient) []MenuCard {
	productIndex := indexProducts(products)
	ingredientIndex := indexIngredients(ingredients)

	cards := make([]MenuCard, 0, len(products))
	for _, p := range products {
		one := []domain.OrderItem{{ProductID: p.ID, Quantity: 1}}
		cards = append(cards, MenuCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			ImageURL:    p.ImageURL,
			Available:   len(domain.CheckStock(productIndex, ingredientIndex, one)) == 0,
		})
	}
	return cards
}

// BuildCart renders a priced cart. Checkout stays disabled while the cart is
// empty, references unknown products or exceeds stock.
func BuildCart(preview interfaces.CartPreview) Cart {
	cart := Cart{
		Lines:    make([]CartLine, 0, len(preview.Lines)),
		Total:    preview.Total.StringFixed(2),
		Warnings: []string{},
	}

	for _, item := range preview.Lines {
		cart.Lines = append(cart.Lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}

	for _, id := range preview.Unknown {
		cart.Warnings = append(cart.Warnings, fmt.Sprintf("product %d is no longer on the menu", id))
	}
	for _, s := range preview.Shortages {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("ingredient %d", s.IngredientID)
		}
		cart.Warnings = append(cart.Warnings,
			fmt.Sprintf("insufficient stock for %s: need %g, have %g", name, s.Required, s.Available))
	}

	cart.CanCheckout = len(cart.Lines) > 0 && len(cart.Warnings) == 0
	return cart
}

package views

import (
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

type InventoryRow struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`
	Unit        string  `json:"unit"`
	LowStock    bool    `json:"low_stock"`
}

type MovementRow struct {
	ID             int64            `json:"id"`
	IngredientID   int64            `json:"ingredient_id"`
	IngredientName string           `json:"ingredient_name"`
	Unit           string           `json:"unit"`
	Direction      domain.Direction `json:"direction"`
	Quantity       float64          `json:"quantity"`
	Description    string           `json:"description"`
	CreatedAt      time.Time        `json:"created_at"`
}

func BuildInventory(ingredients []domain.Ingredient) []InventoryRow {
	rows := make([]InventoryRow, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, InventoryRow{
			ID:          ing.ID,
			Name:        ing.Name,
			Quantity:    ing.Quantity,
			MinQuantity: ing.MinQuantity,
			Unit:        ing.Unit,
			LowStock:    ing.IsLowStock(),
		})
	}
	return rows
}

// BuildMovements keeps the given order and caps the list at limit when
// limit is positive.
func BuildMovements(movements []domain.StockMovement, ingredients []domain.Ingredient, limit int) []MovementRow {
	index := indexIngredients(ingredients)

	if limit > 0 && len(movements) > limit {
		movements = movements[:limit]
	}

	rows := make([]MovementRow, 0, len(movements))
	for _, m := range movements {
		ing, ok := index[m.IngredientID]
		name := ing.Name
		if !ok {
			name = "(removed)"
		}
		rows = append(rows, MovementRow{
			ID:             m.ID,
			IngredientID:   m.IngredientID,
			IngredientName: name,
			Unit:           ing.Unit,
			Direction:      m.Direction,
			Quantity:       m.Quantity,
			Description:    m.Description,
			CreatedAt:      m.CreatedAt,
		})
	}
	return rows
}

func indexIngredients(ingredients []domain.Ingredient) map[int64]domain.Ingredient {
	index := make(map[int64]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		index[ing.ID] = ing
	}
	return index
}

func indexProducts(products []domain.Product) map[int64]domain.Product {
	index := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

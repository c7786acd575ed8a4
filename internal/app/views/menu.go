package views

import "github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"

type RecipeLine struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
}

type ProductRow struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       string       `json:"price"`
	ImageURL    string       `json:"image_url"`
	Recipe      []RecipeLine `json:"recipe"`
}

func BuildMenu(products []domain.Product, ingredients []domain.Ingredient) []ProductRow {
	index := indexIngredients(ingredients)

	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			ImageURL:    p.ImageURL,
			Recipe:      make([]RecipeLine, 0, len(p.Recipe)),
		}
		for _, line := range p.Recipe {
			ing := index[line.IngredientID]
			row.Recipe = append(row.Recipe, RecipeLine{
				IngredientID: line.IngredientID,
				Name:         ing.Name,
				Unit:         ing.Unit,
				Quantity:     line.Quantity,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

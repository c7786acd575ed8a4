package domain

import (
	"fmt"
	"strings"
	"time"
)

// Ingredient is a stock item consumed by product recipes
type Ingredient struct {
	ID          int64
	Name        string
	Quantity    float64
	MinQuantity float64
	Unit        string
}

// IsLowStock reports whether the ingredient reached its alert threshold.
func (i Ingredient) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: ingredient name is required", ErrValidation)
	}
	if strings.TrimSpace(i.Unit) == "" {
		return fmt.Errorf("%w: unit of measure is required", ErrValidation)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if i.MinQuantity < 0 {
		return fmt.Errorf("%w: minimum quantity must not be negative", ErrValidation)
	}
	return nil
}

// StockMovement is an append-only audit record of a quantity change
type StockMovement struct {
	ID           int64
	IngredientID int64
	Direction    Direction
	Quantity     float64
	Description  string
	CreatedAt    time.Time
}

func NewStockMovement(ingredientID int64, direction Direction, quantity float64, description string) StockMovement {
	return StockMovement{
		IngredientID: ingredientID,
		Direction:    direction,
		Quantity:     quantity,
		Description:  description,
		CreatedAt:    time.Now(),
	}
}

package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a menu item together with its recipe
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Recipe      []RecipeLine
}

// RecipeLine says how much of an ingredient one unit of a product consumes
type RecipeLine struct {
	IngredientID int64
	Quantity     float64
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: product description is required", ErrValidation)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if len(p.Recipe) == 0 {
		return fmt.Errorf("%w: recipe needs at least one ingredient", ErrValidation)
	}

	seen := make(map[int64]bool, len(p.Recipe))
	for _, line := range p.Recipe {
		if line.IngredientID <= 0 {
			return fmt.Errorf("%w: recipe line without ingredient", ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: recipe quantity must be greater than zero", ErrValidation)
		}
		if seen[line.IngredientID] {
			return fmt.Errorf("%w: ingredient %d listed twice in recipe", ErrValidation, line.IngredientID)
		}
		seen[line.IngredientID] = true
	}
	return nil
}

// Consumption aggregates the ingredient quantities needed to produce
// quantity units of every product in lines.
func Consumption(products map[int64]Product, lines []OrderItem) map[int64]float64 {
	need := make(map[int64]float64)
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			continue
		}
		for _, r := range p.Recipe {
			need[r.IngredientID] += r.Quantity * float64(line.Quantity)
		}
	}
	return need
}

// Shortage describes an ingredient that does not cover a cart
type Shortage struct {
	IngredientID int64
	Name         string
	Required     float64
	Available    float64
}

// CheckStock compares aggregated consumption against recorded quantities.
// A missing ingredient counts as zero available.
func CheckStock(products map[int64]Product, ingredients map[int64]Ingredient, lines []OrderItem) []Shortage {
	var shortages []Shortage
	need := Consumption(products, lines)
	for id, required := range need {
		ing, ok := ingredients[id]
		if ok && ing.Quantity >= required {
			continue
		}
		s := Shortage{IngredientID: id, Required: required}
		if ok {
			s.Name = ing.Name
			s.Available = ing.Quantity
		}
		shortages = append(shortages, s)
	}
	sort.Slice(shortages, func(i, j int) bool {
		return shortages[i].IngredientID < shortages[j].IngredientID
	})
	return shortages
}

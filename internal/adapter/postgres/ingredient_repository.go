package postgres

import (
	"context"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type ingredientRepository struct {
	db DB
}

func NewIngredientRepository(db DB) interfaces.IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context) ([]domain.Ingredient, error) {
	query := `
		SELECT id, name, quantity, min_quantity, unit
		FROM ingredients
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", mapError(err))
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.MinQuantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *ingredientRepository) FindByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	query := `
		SELECT id, name, quantity, min_quantity, unit
		FROM ingredients
		WHERE id = $1
	`
	var ing domain.Ingredient
	err := r.db.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.MinQuantity, &ing.Unit)
	if err != nil {
		return nil, fmt.Errorf("ingredient %d: %w", id, mapError(err))
	}
	return &ing, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ing *domain.Ingredient) error {
	query := `
		INSERT INTO ingredients (name, quantity, min_quantity, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, ing.Name, ing.Quantity, ing.MinQuantity, ing.Unit).Scan(&ing.ID)
	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", mapError(err))
	}
	return nil
}

func (r *ingredientRepository) Update(ctx context.Context, ing *domain.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, quantity = $2, min_quantity = $3, unit = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, ing.Name, ing.Quantity, ing.MinQuantity, ing.Unit, ing.ID)
	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingredient %d: %w", ing.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ingredientRepository) SetQuantity(ctx context.Context, id int64, quantity float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE ingredients SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to set ingredient quantity: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ingredientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", mapDeleteError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type movementRepository struct {
	db DB
}

func NewMovementRepository(db DB) interfaces.MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Append(ctx context.Context, m *domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (ingredient_id, type, quantity, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		m.IngredientID, string(m.Direction), m.Quantity, m.Description, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to append stock movement: %w", mapError(err))
	}
	return nil
}

// ListRecent returns the newest movements first.
func (r *movementRepository) ListRecent(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	query := `
		SELECT id, ingredient_id, type, quantity, description, created_at
		FROM stock_movements
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", mapError(err))
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Direction, &m.Quantity, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type profileRepository struct {
	db DB
}

func NewProfileRepository(db DB) interfaces.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(role, '')
		FROM profiles
		WHERE id = $1
	`
	var p domain.Profile
	if err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.Role); err != nil {
		return nil, fmt.Errorf("profile %s: %w", id, mapError(err))
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(role, '')
		FROM profiles
		ORDER BY email
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", mapError(err))
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.Role); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, string(role), id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

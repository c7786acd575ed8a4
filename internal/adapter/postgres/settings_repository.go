package postgres

import (
	"context"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type settingsRepository struct {
	db DB
}

func NewSettingsRepository(db DB) interfaces.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT brand_name, text_color, accent_color, COALESCE(background_image_url, '')
		FROM settings
		WHERE id = $1
	`
	var s domain.Settings
	err := r.db.QueryRow(ctx, query, domain.SettingsID).Scan(
		&s.BrandName, &s.TextColor, &s.AccentColor, &s.BackgroundImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", mapError(err))
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s domain.Settings) error {
	query := `
		INSERT INTO settings (id, brand_name, text_color, accent_color, background_image_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE
		SET brand_name = EXCLUDED.brand_name,
		    text_color = EXCLUDED.text_color,
		    accent_color = EXCLUDED.accent_color,
		    background_image_url = EXCLUDED.background_image_url
	`
	_, err := r.db.Exec(ctx, query, domain.SettingsID, s.BrandName, s.TextColor, s.AccentColor, s.BackgroundImageURL)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", mapError(err))
	}
	return nil
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

func TestMapError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "order_items_product_id_fkey"}
	assert.ErrorIs(t, mapDeleteError(fmt.Errorf("delete: %w", fk)), domain.ErrInUse)

	missingParent := mapError(fk)
	assert.ErrorIs(t, missingParent, domain.ErrValidation)
	assert.NotErrorIs(t, missingParent, domain.ErrInUse)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "ingredients_name_key"}
	assert.ErrorIs(t, mapError(unique), domain.ErrValidation)

	notFound := mapError(pgx.ErrNoRows)
	assert.ErrorIs(t, notFound, domain.ErrNotFound)
	assert.ErrorIs(t, notFound, pgx.ErrNoRows)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.NoError(t, mapError(nil))
}

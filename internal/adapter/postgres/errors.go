package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// mapError translates driver errors into domain sentinels. The original
// error stays in the chain. A foreign key failure here means the row points
// at a parent that does not exist.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: references a missing record (%s)", domain.ErrValidation, pgErr.ConstraintName)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s already exists", domain.ErrValidation, pgErr.ConstraintName)
		}
	}

	return err
}

// mapDeleteError is mapError for DELETE statements, where a foreign key
// failure means other rows still reference the target.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrInUse, pgErr.ConstraintName)
	}
	return mapError(err)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type productRepository struct {
	db DB
}

func NewProductRepository(db DB) interfaces.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, COALESCE(image_url, '')
		FROM products
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", mapError(err))
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[int64]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load all recipes in one pass
	recipeRows, err := r.db.Query(ctx, `SELECT product_id, ingredient_id, quantity FROM recipe_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", mapError(err))
	}
	defer recipeRows.Close()

	for recipeRows.Next() {
		var productID int64
		var line domain.RecipeLine
		if err := recipeRows.Scan(&productID, &line.IngredientID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Recipe = append(products[i].Recipe, line)
		}
	}

	return products, recipeRows.Err()
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, COALESCE(image_url, '')
		FROM products
		WHERE id = $1
	`
	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", id, mapError(err))
	}

	rows, err := r.db.Query(ctx, `SELECT ingredient_id, quantity FROM recipe_items WHERE product_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", mapError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.RecipeLine
		if err := rows.Scan(&line.IngredientID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		p.Recipe = append(p.Recipe, line)
	}

	return &p, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	return withTx(ctx, r.db, func(tx Tx) error {
		query := `
			INSERT INTO products (name, description, price, image_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.ImageURL).Scan(&p.ID); err != nil {
			return fmt.Errorf("failed to insert product: %w", mapError(err))
		}
		return insertRecipe(ctx, tx, p.ID, p.Recipe)
	})
}

// Update replaces the product row and its recipe: every old recipe line is
// deleted before the new ones are inserted.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	return withTx(ctx, r.db, func(tx Tx) error {
		query := `
			UPDATE products
			SET name = $1, description = $2, price = $3, image_url = $4
			WHERE id = $5
		`
		tag, err := tx.Exec(ctx, query, p.Name, p.Description, p.Price, p.ImageURL, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", mapError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %d: %w", p.ID, domain.ErrNotFound)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM recipe_items WHERE product_id = $1`, p.ID); err != nil {
			return fmt.Errorf("failed to clear recipe: %w", mapError(err))
		}
		return insertRecipe(ctx, tx, p.ID, p.Recipe)
	})
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_items WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", mapDeleteError(err))
		}

		// order_items keeps a foreign key on products; a sold product fails here
		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", mapDeleteError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func insertRecipe(ctx context.Context, tx Tx, productID int64, recipe []domain.RecipeLine) error {
	query := `
		INSERT INTO recipe_items (product_id, ingredient_id, quantity)
		VALUES ($1, $2, $3)
	`
	for _, line := range recipe {
		if _, err := tx.Exec(ctx, query, productID, line.IngredientID, line.Quantity); err != nil {
			return fmt.Errorf("failed to insert recipe line: %w", mapError(err))
		}
	}
	return nil
}

package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

// Backend tables (Adapter/Postgres)
type IngredientRepository interface {
	List(ctx context.Context) ([]domain.Ingredient, error)
	FindByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	Create(ctx context.Context, ingredient *domain.Ingredient) error
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	SetQuantity(ctx context.Context, id int64, quantity float64) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// Create and Update write the product and its whole recipe in one transaction.
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	// ProcessOrder is the backend's atomic procedure: it inserts the order,
	// its lines and deducts recipe quantities as a single unit.
	ProcessOrder(ctx context.Context, cmd ProcessOrderCommand) (int64, error)
}

type MovementRepository interface {
	Append(ctx context.Context, movement *domain.StockMovement) error
	ListRecent(ctx context.Context, limit int) ([]domain.StockMovement, error)
}

type SettingsRepository interface {
	// Get returns domain.ErrNotFound when the singleton row is missing.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) error
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}

type ProcessOrderCommand struct {
	CustomerName string
	Total        decimal.Decimal
	Items        []ProcessOrderItem
}

type ProcessOrderItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

package interfaces

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

// Commands for the stores
type PlaceOrderCommand struct {
	CustomerName string
	Items        []CartLineCommand
}

type CartLineCommand struct {
	ProductID int64
	Quantity  int
}

type IngredientCommand struct {
	Name        string
	Quantity    float64
	MinQuantity float64
	Unit        string
}

type ProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	// ImageURL is kept when Image is nil.
	ImageURL string
	Image    *Upload
	Recipe   []domain.RecipeLine
}

type UpdateSettingsCommand struct {
	BrandName   string
	TextColor   string
	AccentColor string
	Background  *Upload
}

// CartPreview is the priced cart with the ingredients it would run short of.
type CartPreview struct {
	Lines     []domain.OrderItem
	Total     decimal.Decimal
	Shortages []domain.Shortage
	// Unknown lists product ids missing from the catalog.
	Unknown []int64
}

// Upload is a file received from a form, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Store contracts consumed by the HTTP views
type CatalogService interface {
	Ingredients() []domain.Ingredient
	Products() []domain.Product
	Orders() []domain.Order
	Movements() []domain.StockMovement

	Refresh(ctx context.Context) error
	// RefreshCollections reloads only the named collections.
	RefreshCollections(ctx context.Context, collections ...Collection) error
	FetchMovements(ctx context.Context) error
	PreviewCart(lines []CartLineCommand) CartPreview

	AddOrder(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.Status) error

	RestockIngredient(ctx context.Context, id int64, amount float64) error
	AddIngredient(ctx context.Context, cmd IngredientCommand) (*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, id int64, cmd IngredientCommand) error
	DeleteIngredient(ctx context.Context, id int64) error

	AddProduct(ctx context.Context, cmd ProductCommand) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, cmd ProductCommand) error
	DeleteProduct(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, upload Upload) (string, error)
}

type IdentityService interface {
	Resolve(ctx context.Context, subject, email string) domain.Identity
	HandleAuthEvent(ctx context.Context, event AuthEvent) error
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	SetRole(ctx context.Context, profileID string, role domain.Role) error
	SignInURL() string
}

type SettingsService interface {
	Get() *domain.Settings
	Refresh(ctx context.Context) error
	Update(ctx context.Context, cmd UpdateSettingsCommand) error
	SetBackground(ctx context.Context, upload Upload) (string, error)
}

// TokenVerifier turns a bearer token into subject and email.
type TokenVerifier interface {
	Verify(token string) (subject, email string, err error)
}

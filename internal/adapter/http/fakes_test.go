package http

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type fakeCatalog struct {
	ingredients []domain.Ingredient
	products    []domain.Product
	orders      []domain.Order
	movements   []domain.StockMovement

	err          error
	placed       []interfaces.PlaceOrderCommand
	statusCalls  map[int64]domain.Status
	restocked    map[int64]float64
	ingredientCm []interfaces.IngredientCommand
	productCm    []interfaces.ProductCommand
	deleted      []int64
	uploads      []interfaces.Upload
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		ingredients: []domain.Ingredient{
			{ID: 1, Name: "Pão", Quantity: 50, MinQuantity: 20, Unit: "un"},
			{ID: 2, Name: "Bacon", Quantity: 2, MinQuantity: 30, Unit: "fatia"},
		},
		products: []domain.Product{
			{ID: 10, Name: "X-Bacon", Description: "Com bacon", Price: decimal.NewFromInt(28),
				Recipe: []domain.RecipeLine{{IngredientID: 1, Quantity: 1}, {IngredientID: 2, Quantity: 3}}},
		},
		orders: []domain.Order{
			{ID: 5, CustomerName: "Ana", Status: domain.StatusPending, Total: decimal.NewFromInt(28),
				Items: []domain.OrderItem{{ProductID: 10, Name: "X-Bacon", Quantity: 1, UnitPrice: decimal.NewFromInt(28)}}},
		},
		statusCalls: map[int64]domain.Status{},
		restocked:   map[int64]float64{},
	}
}

func (f *fakeCatalog) Ingredients() []domain.Ingredient       { return f.ingredients }
func (f *fakeCatalog) Products() []domain.Product             { return f.products }
func (f *fakeCatalog) Orders() []domain.Order                 { return f.orders }
func (f *fakeCatalog) Movements() []domain.StockMovement      { return f.movements }
func (f *fakeCatalog) Refresh(ctx context.Context) error      { return f.err }
func (f *fakeCatalog) FetchMovements(ctx context.Context) error { return nil }

func (f *fakeCatalog) RefreshCollections(ctx context.Context, collections ...interfaces.Collection) error {
	return f.err
}

func (f *fakeCatalog) PreviewCart(lines []interfaces.CartLineCommand) interfaces.CartPreview {
	preview := interfaces.CartPreview{Total: decimal.Zero}
	for _, line := range lines {
		item := domain.OrderItem{ProductID: line.ProductID, Name: "X-Bacon", Quantity: line.Quantity, UnitPrice: decimal.NewFromInt(28)}
		preview.Lines = append(preview.Lines, item)
		preview.Total = preview.Total.Add(item.Subtotal())
	}
	return preview
}

func (f *fakeCatalog) AddOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.placed = append(f.placed, cmd)
	return &domain.Order{ID: 42, CustomerName: cmd.CustomerName, Status: domain.StatusPending, Total: decimal.RequireFromString("56")}, nil
}

func (f *fakeCatalog) UpdateOrderStatus(ctx context.Context, id int64, status domain.Status) error {
	if f.err != nil {
		return f.err
	}
	f.statusCalls[id] = status
	return nil
}

func (f *fakeCatalog) RestockIngredient(ctx context.Context, id int64, amount float64) error {
	if f.err != nil {
		return f.err
	}
	f.restocked[id] = amount
	return nil
}

func (f *fakeCatalog) AddIngredient(ctx context.Context, cmd interfaces.IngredientCommand) (*domain.Ingredient, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.ingredientCm = append(f.ingredientCm, cmd)
	return &domain.Ingredient{ID: 3, Name: cmd.Name}, nil
}

func (f *fakeCatalog) UpdateIngredient(ctx context.Context, id int64, cmd interfaces.IngredientCommand) error {
	f.ingredientCm = append(f.ingredientCm, cmd)
	return f.err
}

func (f *fakeCatalog) DeleteIngredient(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) AddProduct(ctx context.Context, cmd interfaces.ProductCommand) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.productCm = append(f.productCm, cmd)
	return &domain.Product{ID: 11, Name: cmd.Name}, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id int64, cmd interfaces.ProductCommand) error {
	f.productCm = append(f.productCm, cmd)
	return f.err
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) UploadImage(ctx context.Context, upload interfaces.Upload) (string, error) {
	f.uploads = append(f.uploads, upload)
	return "http://files/storage/" + upload.Filename, nil
}

type fakeIdentity struct {
	roles    map[string]domain.Role
	profiles []domain.Profile
	setRoles map[string]domain.Role
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		roles: map[string]domain.Role{
			"admin-1":   domain.RoleAdmin,
			"manager-1": domain.RoleManager,
			"kitchen-1": domain.RoleKitchen,
		},
		profiles: []domain.Profile{{ID: "admin-1", Email: "boss@burger.test", Role: domain.RoleAdmin}},
		setRoles: map[string]domain.Role{},
	}
}

func (f *fakeIdentity) Resolve(ctx context.Context, subject, email string) domain.Identity {
	role, ok := f.roles[subject]
	if !ok {
		role = domain.FallbackRole
	}
	return domain.Identity{Subject: subject, Email: email, Role: role}
}

func (f *fakeIdentity) HandleAuthEvent(ctx context.Context, event interfaces.AuthEvent) error {
	return nil
}

func (f *fakeIdentity) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return f.profiles, nil
}

func (f *fakeIdentity) SetRole(ctx context.Context, profileID string, role domain.Role) error {
	f.setRoles[profileID] = role
	return nil
}

func (f *fakeIdentity) SignInURL() string { return "https://auth.test/authorize" }

type fakeSettings struct {
	current *domain.Settings
	updates []interfaces.UpdateSettingsCommand
}

func (f *fakeSettings) Get() *domain.Settings              { return f.current }
func (f *fakeSettings) Refresh(ctx context.Context) error { return nil }

func (f *fakeSettings) Update(ctx context.Context, cmd interfaces.UpdateSettingsCommand) error {
	f.updates = append(f.updates, cmd)
	f.current = &domain.Settings{BrandName: cmd.BrandName, TextColor: cmd.TextColor, AccentColor: cmd.AccentColor}
	return nil
}

func (f *fakeSettings) SetBackground(ctx context.Context, upload interfaces.Upload) (string, error) {
	return "http://files/storage/bg.png", nil
}

// fakeVerifier accepts "token-<subject>".
type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (string, string, error) {
	subject, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return "", "", domain.ErrUnauthorized
	}
	return subject, subject + "@burger.test", nil
}

type fakeStorage struct {
	files map[string]string
}

func (f *fakeStorage) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	return f.PublicURL(name), nil
}

func (f *fakeStorage) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	body, ok := f.files[name]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(body)), "image/png", nil
}

func (f *fakeStorage) PublicURL(name string) string { return "http://files/storage/" + name }

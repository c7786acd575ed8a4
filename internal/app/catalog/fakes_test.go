package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

// memoryBackend stands in for the database, including process_order.
type memoryBackend struct {
	mu          sync.Mutex
	nextID      int64
	ingredients map[int64]domain.Ingredient
	products    map[int64]domain.Product
	orders      map[int64]domain.Order
	movements   []domain.StockMovement

	failMovements bool
	failProcess   error
	processCalls  int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		nextID:      100,
		ingredients: make(map[int64]domain.Ingredient),
		products:    make(map[int64]domain.Product),
		orders:      make(map[int64]domain.Order),
	}
}

func (b *memoryBackend) id() int64 {
	b.nextID++
	return b.nextID
}

func (b *memoryBackend) repos() Repositories {
	return Repositories{
		Ingredients: ingredientRepo{b},
		Products:    productRepo{b},
		Orders:      orderRepo{b},
		Movements:   movementRepo{b},
	}
}

type ingredientRepo struct{ b *memoryBackend }

func (r ingredientRepo) List(ctx context.Context) ([]domain.Ingredient, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []domain.Ingredient
	for _, ing := range r.b.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r ingredientRepo) FindByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	ing, ok := r.b.ingredients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ing, nil
}

func (r ingredientRepo) Create(ctx context.Context, ing *domain.Ingredient) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	ing.ID = r.b.id()
	r.b.ingredients[ing.ID] = *ing
	return nil
}

func (r ingredientRepo) Update(ctx context.Context, ing *domain.Ingredient) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if _, ok := r.b.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	r.b.ingredients[ing.ID] = *ing
	return nil
}

func (r ingredientRepo) SetQuantity(ctx context.Context, id int64, quantity float64) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	ing, ok := r.b.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.Quantity = quantity
	r.b.ingredients[id] = ing
	return nil
}

func (r ingredientRepo) Delete(ctx context.Context, id int64) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, p := range r.b.products {
		for _, line := range p.Recipe {
			if line.IngredientID == id {
				return fmt.Errorf("%w: recipe_items_ingredient_id_fkey", domain.ErrInUse)
			}
		}
	}
	delete(r.b.ingredients, id)
	return nil
}

type productRepo struct{ b *memoryBackend }

func (r productRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []domain.Product
	for _, p := range r.b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r productRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	p, ok := r.b.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r productRepo) Create(ctx context.Context, p *domain.Product) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	p.ID = r.b.id()
	r.b.products[p.ID] = *p
	return nil
}

func (r productRepo) Update(ctx context.Context, p *domain.Product) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if _, ok := r.b.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.b.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(ctx context.Context, id int64) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, o := range r.b.orders {
		for _, item := range o.Items {
			if item.ProductID == id {
				return fmt.Errorf("%w: order_items_product_id_fkey", domain.ErrInUse)
			}
		}
	}
	delete(r.b.products, id)
	return nil
}

type orderRepo struct{ b *memoryBackend }

func (r orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []domain.Order
	for _, o := range r.b.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r orderRepo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	o, ok := r.b.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r orderRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	o, ok := r.b.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.b.orders[id] = o
	return nil
}

func (r orderRepo) ProcessOrder(ctx context.Context, cmd interfaces.ProcessOrderCommand) (int64, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.processCalls++
	if r.b.failProcess != nil {
		return 0, r.b.failProcess
	}

	order := domain.Order{
		ID:           r.b.id(),
		CustomerName: cmd.CustomerName,
		Status:       domain.StatusPending,
		Total:        cmd.Total,
		CreatedAt:    time.Now(),
	}
	for _, item := range cmd.Items {
		p := r.b.products[item.ProductID]
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID, Name: p.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice,
		})
		for _, line := range p.Recipe {
			ing := r.b.ingredients[line.IngredientID]
			ing.Quantity -= line.Quantity * float64(item.Quantity)
			r.b.ingredients[line.IngredientID] = ing
		}
	}
	r.b.orders[order.ID] = order
	return order.ID, nil
}

type movementRepo struct{ b *memoryBackend }

func (r movementRepo) Append(ctx context.Context, m *domain.StockMovement) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if r.b.failMovements {
		return errors.New("insert into stock_movements failed")
	}
	m.ID = r.b.id()
	r.b.movements = append(r.b.movements, *m)
	return nil
}

func (r movementRepo) ListRecent(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	var out []domain.StockMovement
	for i := len(r.b.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.b.movements[i])
	}
	return out, nil
}

type fakeStorage struct {
	names []string
}

func (f *fakeStorage) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	f.names = append(f.names, name)
	return "http://files/storage/" + name, nil
}

func (f *fakeStorage) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return nil, "", domain.ErrNotFound
}

func (f *fakeStorage) PublicURL(name string) string { return "http://files/storage/" + name }

type fakePublisher struct {
	mu     sync.Mutex
	events []interfaces.StoreEvent
}

func (f *fakePublisher) PublishStoreEvent(ctx context.Context, event interfaces.StoreEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

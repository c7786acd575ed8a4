package catalog

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

// MovementHistoryLimit bounds the movements snapshot.
const MovementHistoryLimit = 50

var allCollections = []interfaces.Collection{
	interfaces.CollectionIngredients,
	interfaces.CollectionProducts,
	interfaces.CollectionOrders,
	interfaces.CollectionMovements,
}

type Repositories struct {
	Ingredients interfaces.IngredientRepository
	Products    interfaces.ProductRepository
	Orders      interfaces.OrderRepository
	Movements   interfaces.MovementRepository
}

// Service owns the catalog and stock snapshots. Mutations go to the backend
// first and the affected collections are re-fetched afterwards; snapshots are
// never patched locally.
type Service struct {
	repos     Repositories
	storage   interfaces.FileStorage
	publisher interfaces.EventPublisher
	logger    logger.Logger
	origin    string

	mu          sync.RWMutex
	ingredients []domain.Ingredient
	products    []domain.Product
	orders      []domain.Order
	movements   []domain.StockMovement
}

func NewService(
	repos Repositories,
	storage interfaces.FileStorage,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
	origin string,
) *Service {
	return &Service{
		repos:     repos,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		origin:    origin,
	}
}

func (s *Service) Ingredients() []domain.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Ingredient(nil), s.ingredients...)
}

func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Service) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}

func (s *Service) Movements() []domain.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StockMovement(nil), s.movements...)
}

func (s *Service) Refresh(ctx context.Context) error {
	return s.RefreshCollections(ctx, allCollections...)
}

func (s *Service) FetchMovements(ctx context.Context) error {
	return s.RefreshCollections(ctx, interfaces.CollectionMovements)
}

// RefreshCollections loads the requested collections concurrently and swaps
// them in together. Nothing changes if any load fails.
func (s *Service) RefreshCollections(ctx context.Context, collections ...interfaces.Collection) error {
	var (
		ingredients []domain.Ingredient
		products    []domain.Product
		orders      []domain.Order
		movements   []domain.StockMovement
		want        = make(map[interfaces.Collection]bool, len(collections))
	)
	for _, c := range collections {
		want[c] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	if want[interfaces.CollectionIngredients] {
		g.Go(func() (err error) {
			ingredients, err = s.repos.Ingredients.List(gctx)
			return err
		})
	}
	if want[interfaces.CollectionProducts] {
		g.Go(func() (err error) {
			products, err = s.repos.Products.List(gctx)
			return err
		})
	}
	if want[interfaces.CollectionOrders] {
		g.Go(func() (err error) {
			orders, err = s.repos.Orders.List(gctx)
			return err
		})
	}
	if want[interfaces.CollectionMovements] {
		g.Go(func() (err error) {
			movements, err = s.repos.Movements.ListRecent(gctx, MovementHistoryLimit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if want[interfaces.CollectionIngredients] {
		s.ingredients = ingredients
	}
	if want[interfaces.CollectionProducts] {
		s.products = products
	}
	if want[interfaces.CollectionOrders] {
		s.orders = orders
	}
	if want[interfaces.CollectionMovements] {
		s.movements = movements
	}
	return nil
}

// PreviewCart prices a cart against the current snapshots without touching
// the backend.
func (s *Service) PreviewCart(lines []interfaces.CartLineCommand) interfaces.CartPreview {
	products, ingredients := s.productIndex(), s.ingredientIndex()

	var preview interfaces.CartPreview
	for _, line := range mergeLines(lines) {
		p, ok := products[line.ProductID]
		if !ok {
			preview.Unknown = append(preview.Unknown, line.ProductID)
			continue
		}
		preview.Lines = append(preview.Lines, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
	}

	total := decimal.Zero
	for _, item := range preview.Lines {
		total = total.Add(item.Subtotal())
	}
	preview.Total = total.Round(2)
	preview.Shortages = domain.CheckStock(products, ingredients, preview.Lines)
	return preview
}

func (s *Service) AddOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*domain.Order, error) {
	products, ingredients := s.productIndex(), s.ingredientIndex()

	lines := mergeLines(cmd.Items)
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %d", domain.ErrValidation, line.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
	}

	order, err := domain.NewOrder(cmd.CustomerName, items)
	if err != nil {
		return nil, err
	}

	if shortages := domain.CheckStock(products, ingredients, order.Items); len(shortages) > 0 {
		s.logger.Warn("stock_precheck_failed", "Cart exceeds recorded stock", logger.RequestID(ctx),
			map[string]interface{}{"shortages": len(shortages)}, domain.ErrInsufficientStock)
		return nil, &domain.ShortageError{Shortages: shortages}
	}

	processItems := make([]interfaces.ProcessOrderItem, len(order.Items))
	for i, item := range order.Items {
		processItems[i] = interfaces.ProcessOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	id, err := s.repos.Orders.ProcessOrder(ctx, interfaces.ProcessOrderCommand{
		CustomerName: order.CustomerName,
		Total:        order.Total,
		Items:        processItems,
	})
	if err != nil {
		s.logger.Error("order_process_failed", "Backend rejected order", logger.RequestID(ctx), nil, err)
		return nil, err
	}
	order.ID = id

	s.logger.Info("order_created", fmt.Sprintf("Order %d created", id), logger.RequestID(ctx),
		map[string]interface{}{"order_id": id, "total": order.Total.StringFixed(2)})

	s.recordConsumption(ctx, order, products)

	s.refreshAfter(ctx, "order_created", interfaces.CollectionOrders, interfaces.CollectionIngredients, interfaces.CollectionMovements)
	s.notify(ctx, "order_created", strconv.FormatInt(id, 10),
		interfaces.CollectionOrders, interfaces.CollectionIngredients, interfaces.CollectionMovements)

	return order, nil
}

// recordConsumption appends one out movement per ingredient per order line.
// Failures are logged only; the order already exists.
func (s *Service) recordConsumption(ctx context.Context, order *domain.Order, products map[int64]domain.Product) {
	description := fmt.Sprintf("Order #%d", order.ID)
	for _, item := range order.Items {
		for _, r := range products[item.ProductID].Recipe {
			m := domain.NewStockMovement(r.IngredientID, domain.DirectionOut, r.Quantity*float64(item.Quantity), description)
			if err := s.repos.Movements.Append(ctx, &m); err != nil {
				s.logger.Warn("movement_append_failed", "Failed to record stock consumption", logger.RequestID(ctx),
					map[string]interface{}{"order_id": order.ID, "ingredient_id": r.IngredientID}, err)
			}
		}
	}
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	order, err := s.repos.Orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := order.TransitionTo(status); err != nil {
		return err
	}

	if err := s.repos.Orders.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("order_status_update_failed", "Failed to update order status", logger.RequestID(ctx),
			map[string]interface{}{"order_id": id}, err)
		return err
	}

	s.logger.Debug("order_status_updated", fmt.Sprintf("Order %d is now %s", id, status), logger.RequestID(ctx),
		map[string]interface{}{"order_id": id, "status": status})

	s.refreshAfter(ctx, "order_status_updated", interfaces.CollectionOrders)
	s.notify(ctx, "order_status_updated", strconv.FormatInt(id, 10), interfaces.CollectionOrders)
	return nil
}

// RestockIngredient adds amount to the recorded quantity. The read and the
// write are separate statements, so concurrent restocks of one ingredient
// from different instances can lose an update.
func (s *Service) RestockIngredient(ctx context.Context, id int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: restock amount must be greater than zero", domain.ErrValidation)
	}

	ing, err := s.repos.Ingredients.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.Ingredients.SetQuantity(ctx, id, ing.Quantity+amount); err != nil {
		return err
	}

	m := domain.NewStockMovement(id, domain.DirectionIn, amount, "Restock")
	movementErr := s.repos.Movements.Append(ctx, &m)

	s.refreshAfter(ctx, "ingredient_restocked", interfaces.CollectionIngredients, interfaces.CollectionMovements)
	s.notify(ctx, "ingredient_restocked", strconv.FormatInt(id, 10),
		interfaces.CollectionIngredients, interfaces.CollectionMovements)

	if movementErr != nil {
		s.logger.Error("movement_append_failed", "Restock applied without movement record", logger.RequestID(ctx),
			map[string]interface{}{"ingredient_id": id}, movementErr)
		return fmt.Errorf("restock applied but movement not recorded: %w", movementErr)
	}
	return nil
}

func (s *Service) AddIngredient(ctx context.Context, cmd interfaces.IngredientCommand) (*domain.Ingredient, error) {
	ing := ingredientFromCommand(cmd)
	if err := ing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repos.Ingredients.Create(ctx, &ing); err != nil {
		return nil, err
	}

	s.refreshAfter(ctx, "ingredient_created", interfaces.CollectionIngredients)
	s.notify(ctx, "ingredient_created", strconv.FormatInt(ing.ID, 10), interfaces.CollectionIngredients)
	return &ing, nil
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, cmd interfaces.IngredientCommand) error {
	ing := ingredientFromCommand(cmd)
	ing.ID = id
	if err := ing.Validate(); err != nil {
		return err
	}

	if err := s.repos.Ingredients.Update(ctx, &ing); err != nil {
		return err
	}

	s.refreshAfter(ctx, "ingredient_updated", interfaces.CollectionIngredients)
	s.notify(ctx, "ingredient_updated", strconv.FormatInt(id, 10), interfaces.CollectionIngredients)
	return nil
}

func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	if err := s.repos.Ingredients.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshAfter(ctx, "ingredient_deleted", interfaces.CollectionIngredients)
	s.notify(ctx, "ingredient_deleted", strconv.FormatInt(id, 10), interfaces.CollectionIngredients)
	return nil
}

func (s *Service) AddProduct(ctx context.Context, cmd interfaces.ProductCommand) (*domain.Product, error) {
	p := productFromCommand(cmd)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if cmd.Image != nil {
		url, err := s.UploadImage(ctx, *cmd.Image)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.repos.Products.Create(ctx, &p); err != nil {
		return nil, err
	}

	s.refreshAfter(ctx, "product_created", interfaces.CollectionProducts)
	s.notify(ctx, "product_created", strconv.FormatInt(p.ID, 10), interfaces.CollectionProducts)
	return &p, nil
}

// UpdateProduct replaces the product and its whole recipe.
func (s *Service) UpdateProduct(ctx context.Context, id int64, cmd interfaces.ProductCommand) error {
	p := productFromCommand(cmd)
	p.ID = id
	if err := p.Validate(); err != nil {
		return err
	}

	if cmd.Image != nil {
		url, err := s.UploadImage(ctx, *cmd.Image)
		if err != nil {
			return err
		}
		p.ImageURL = url
	}

	if err := s.repos.Products.Update(ctx, &p); err != nil {
		return err
	}

	s.refreshAfter(ctx, "product_updated", interfaces.CollectionProducts)
	s.notify(ctx, "product_updated", strconv.FormatInt(id, 10), interfaces.CollectionProducts)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repos.Products.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshAfter(ctx, "product_deleted", interfaces.CollectionProducts)
	s.notify(ctx, "product_deleted", strconv.FormatInt(id, 10), interfaces.CollectionProducts)
	return nil
}

// UploadImage stores a product image under a random name and returns its
// public URL.
func (s *Service) UploadImage(ctx context.Context, upload interfaces.Upload) (string, error) {
	name := uuid.NewString() + imageExt(upload.Filename)

	url, err := s.storage.Upload(ctx, name, upload.ContentType, upload.Body)
	if err != nil {
		s.logger.Error("image_upload_failed", "Failed to upload product image", logger.RequestID(ctx),
			map[string]interface{}{"filename": upload.Filename}, err)
		return "", err
	}
	return url, nil
}

// refreshAfter re-fetches after a successful mutation. The mutation stands
// even if the re-fetch fails; the next refresh catches up.
func (s *Service) refreshAfter(ctx context.Context, action string, collections ...interfaces.Collection) {
	if err := s.RefreshCollections(ctx, collections...); err != nil {
		s.logger.Warn("refresh_failed", "Failed to re-fetch after "+action, logger.RequestID(ctx),
			map[string]interface{}{"collections": collections}, err)
	}
}

func (s *Service) notify(ctx context.Context, action, entityID string, collections ...interfaces.Collection) {
	if s.publisher == nil {
		return
	}

	event := interfaces.StoreEvent{
		Origin:      s.origin,
		Action:      action,
		Collections: collections,
		EntityID:    entityID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.publisher.PublishStoreEvent(ctx, event); err != nil {
		s.logger.Warn("rabbitmq_publish_failed", "Failed to publish store event", logger.RequestID(ctx),
			map[string]interface{}{"action": action}, err)
	}
}

func (s *Service) productIndex() map[int64]domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[int64]domain.Product, len(s.products))
	for _, p := range s.products {
		index[p.ID] = p
	}
	return index
}

func (s *Service) ingredientIndex() map[int64]domain.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[int64]domain.Ingredient, len(s.ingredients))
	for _, ing := range s.ingredients {
		index[ing.ID] = ing
	}
	return index
}

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(lines []interfaces.CartLineCommand) []interfaces.CartLineCommand {
	merged := make([]interfaces.CartLineCommand, 0, len(lines))
	pos := make(map[int64]int, len(lines))
	for _, line := range lines {
		if i, ok := pos[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		pos[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

func ingredientFromCommand(cmd interfaces.IngredientCommand) domain.Ingredient {
	return domain.Ingredient{
		Name:        strings.TrimSpace(cmd.Name),
		Quantity:    cmd.Quantity,
		MinQuantity: cmd.MinQuantity,
		Unit:        strings.TrimSpace(cmd.Unit),
	}
}

func productFromCommand(cmd interfaces.ProductCommand) domain.Product {
	return domain.Product{
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Price:       cmd.Price,
		ImageURL:    cmd.ImageURL,
		Recipe:      append([]domain.RecipeLine(nil), cmd.Recipe...),
	}
}

func imageExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) < 2 || len(ext) > 5 {
		return ""
	}
	return ext
}

package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Order represents a sale registered at the counter
type Order struct {
	ID           int64
	CustomerName string
	Status       Status
	Total        decimal.Decimal
	CreatedAt    time.Time
	Items        []OrderItem
}

// OrderItem is a product line with the unit price charged at the time of sale
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates a pending order with business rules applied
func NewOrder(customerName string, items []OrderItem) (*Order, error) {
	order := &Order{
		CustomerName: strings.TrimSpace(customerName),
		Status:       StatusPending,
		Items:        items,
		CreatedAt:    time.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	order.CalculateTotal()

	return order, nil
}

// Validate applies business validation rules
func (o *Order) Validate() error {
	if n := utf8.RuneCountInString(o.CustomerName); n < 1 || n > 100 {
		return fmt.Errorf("%w: customer name must be 1-100 characters", ErrValidation)
	}

	if len(o.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	for _, item := range o.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity for %q must be at least 1", ErrValidation, item.Name)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: price for %q must not be negative", ErrValidation, item.Name)
		}
	}

	return nil
}

// CalculateTotal sums unit price times quantity over all lines
func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Total = total.Round(2)
}

// TransitionTo moves the order forward. Only the direct successor of the
// current status is accepted.
func (o *Order) TransitionTo(newStatus Status) error {
	if !o.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, newStatus)
	}
	o.Status = newStatus
	return nil
}

func (o *Order) CanTransitionTo(newStatus Status) bool {
	next, ok := o.Status.Next()
	return ok && next == newStatus
}

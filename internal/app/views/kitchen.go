package views

import (
	"sort"
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

type KitchenItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// KitchenCard carries exactly one forward transition.
type KitchenCard struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	CreatedAt    time.Time     `json:"created_at"`
	Items        []KitchenItem `json:"items"`
	Next         domain.Status `json:"next"`
}

type KitchenBoard struct {
	Pending []KitchenCard `json:"pending"`
	Ready   []KitchenCard `json:"ready"`
}

// BuildKitchenBoard splits open orders into lanes, oldest first. Delivered
// orders are left off the board.
func BuildKitchenBoard(orders []domain.Order) KitchenBoard {
	board := KitchenBoard{Pending: []KitchenCard{}, Ready: []KitchenCard{}}

	sorted := append([]domain.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for _, o := range sorted {
		next, ok := o.Status.Next()
		if !ok {
			continue
		}

		card := KitchenCard{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			CreatedAt:    o.CreatedAt,
			Items:        make([]KitchenItem, 0, len(o.Items)),
			Next:         next,
		}
		for _, item := range o.Items {
			card.Items = append(card.Items, KitchenItem{Name: item.Name, Quantity: item.Quantity})
		}

		switch o.Status {
		case domain.StatusPending:
			board.Pending = append(board.Pending, card)
		case domain.StatusReady:
			board.Ready = append(board.Ready, card)
		}
	}
	return board
}

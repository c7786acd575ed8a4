package views

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

const (
	RecentOrdersLimit    = 5
	RecentMovementsLimit = 10
)

type OrderSummary struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	Status       domain.Status `json:"status"`
	Total        string        `json:"total"`
	CreatedAt    time.Time     `json:"created_at"`
}

type Report struct {
	Revenue         string         `json:"revenue"`
	OrderCount      int            `json:"order_count"`
	LowStockCount   int            `json:"low_stock_count"`
	RecentOrders    []OrderSummary `json:"recent_orders"`
	RecentMovements []MovementRow  `json:"recent_movements"`
}

type TeamMember struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func BuildReport(orders []domain.Order, ingredients []domain.Ingredient, movements []domain.StockMovement) Report {
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	lowStock := 0
	for _, ing := range ingredients {
		if ing.IsLowStock() {
			lowStock++
		}
	}

	recent := append([]domain.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > RecentOrdersLimit {
		recent = recent[:RecentOrdersLimit]
	}

	summaries := make([]OrderSummary, 0, len(recent))
	for _, o := range recent {
		summaries = append(summaries, OrderSummary{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Status:       o.Status,
			Total:        o.Total.StringFixed(2),
			CreatedAt:    o.CreatedAt,
		})
	}

	latest := append([]domain.StockMovement(nil), movements...)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].CreatedAt.After(latest[j].CreatedAt)
	})

	return Report{
		Revenue:         revenue.StringFixed(2),
		OrderCount:      len(orders),
		LowStockCount:   lowStock,
		RecentOrders:    summaries,
		RecentMovements: BuildMovements(latest, ingredients, RecentMovementsLimit),
	}
}

func BuildTeam(profiles []domain.Profile) []TeamMember {
	team := make([]TeamMember, 0, len(profiles))
	for _, p := range profiles {
		role := p.Role
		if !role.IsAssignable() {
			role = domain.FallbackRole
		}
		team = append(team, TeamMember{ID: p.ID, Email: p.Email, Role: role})
	}
	return team
}

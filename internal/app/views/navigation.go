package views

import "github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"

type Tab string

const (
	TabPOS        Tab = "pos"
	TabKitchen    Tab = "kitchen"
	TabInventory  Tab = "inventory"
	TabMenu       Tab = "menu"
	TabManagement Tab = "management"
)

var tabsByRole = map[domain.Role][]Tab{
	domain.RoleAdmin:    {TabPOS, TabKitchen, TabInventory, TabMenu, TabManagement},
	domain.RoleManager:  {TabInventory, TabMenu},
	domain.RoleKitchen:  {TabKitchen},
	domain.RoleCustomer: {TabPOS},
	domain.RoleGuest:    {TabPOS},
}

// AllowedTabs lists the tabs role can open, in display order. Unknown roles
// get what a customer gets.
func AllowedTabs(role domain.Role) []Tab {
	tabs, ok := tabsByRole[role]
	if !ok {
		tabs = tabsByRole[domain.FallbackRole]
	}
	return append([]Tab(nil), tabs...)
}

func CanAccess(role domain.Role, tab Tab) bool {
	for _, t := range AllowedTabs(role) {
		if t == tab {
			return true
		}
	}
	return false
}

// ResolveTab returns requested when role may open it, otherwise the first
// tab role is allowed to see.
func ResolveTab(role domain.Role, requested string) Tab {
	if tab := Tab(requested); CanAccess(role, tab) {
		return tab
	}
	return AllowedTabs(role)[0]
}

type Navigation struct {
	Role   domain.Role `json:"role"`
	Tabs   []Tab       `json:"tabs"`
	Active Tab         `json:"active"`
}

func BuildNavigation(role domain.Role, requested string) Navigation {
	return Navigation{
		Role:   role,
		Tabs:   AllowedTabs(role),
		Active: ResolveTab(role, requested),
	}
}

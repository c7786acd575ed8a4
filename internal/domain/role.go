package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleKitchen  Role = "kitchen"
	RoleCustomer Role = "customer"
	// RoleGuest is never stored; it marks a visitor without a session.
	RoleGuest Role = "guest"
)

// FallbackRole is granted to a signed-in subject whose profile cannot be
// read or does not exist. It favors restricted access over failure.
const FallbackRole = RoleCustomer

func (r Role) IsAssignable() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleKitchen, RoleCustomer:
		return true
	}
	return false
}

// Profile is the per-user row that carries the role
type Profile struct {
	ID    string
	Email string
	Role  Role
}

// Identity is the authenticated subject as seen by the application
type Identity struct {
	Subject string
	Email   string
	Role    Role
}

// Guest returns the identity used when no session is present.
func Guest() Identity {
	return Identity{Role: RoleGuest}
}

func (i Identity) IsGuest() bool {
	return i.Subject == ""
}

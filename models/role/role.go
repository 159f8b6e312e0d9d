package role

import "fmt"

// Role is the closed set of account types. Anything outside of it is
// rejected at parse time so role checks stay exhaustive.
type Role string

const (
	User    Role = "User"
	Artisan Role = "Artisan"
	Admin   Role = "Admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case User, Artisan, Admin:
		return true
	default:
		return false
	}
}

// Parse converts a raw string (e.g. a JWT claim) into a Role.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// CanCloseOrder reports whether this role may close a booking order.
// Artisans never close their own orders.
func (r Role) CanCloseOrder() bool {
	switch r {
	case User, Admin:
		return true
	case Artisan:
		return false
	default:
		return false
	}
}

// CanManageAccounts reports whether this role may administer other
// accounts (listing users, deleting artisans, KYC verification).
func (r Role) CanManageAccounts() bool {
	return r == Admin
}

// AllRoles returns every valid role.
func AllRoles() []Role {
	return []Role{User, Artisan, Admin}
}

package authorization

import "fmt"

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleCompanyAdmin UserRole = "company_admin"
	RoleAgent        UserRole = "agent"
	RoleClient       UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCompanyAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

// IsAdminTier is true for admin and company_admin.
func (r UserRole) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleCompanyAdmin
}

// IsInternal is true for Systech staff, i.e. every role except client.
func (r UserRole) IsInternal() bool {
	return r.IsValid() && r != RoleClient
}

func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return role, nil
}

// Actor is the authenticated caller of an engine operation. ClientID is set
// for customer users and scopes what they may see.
type Actor struct {
	UserID   uint     `json:"user_id"`
	Role     UserRole `json:"role"`
	ClientID *uint    `json:"client_id,omitempty"`
}

func (a Actor) IsInternal() bool { return a.Role.IsInternal() }

func (a Actor) IsAdminTier() bool { return a.Role.IsAdminTier() }

func (a Actor) Validate() error {
	if a.UserID == 0 {
		return fmt.Errorf("actor user ID is required")
	}
	if !a.Role.IsValid() {
		return fmt.Errorf("invalid role: %q", a.Role)
	}
	if a.Role == RoleClient && a.ClientID == nil {
		return fmt.Errorf("client actor requires a client ID")
	}
	return nil
}

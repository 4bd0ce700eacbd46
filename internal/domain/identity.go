package domain

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

// Identity is the resolved caller of a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Elevated reports whether the caller may see and manage all orders,
// not just their own.
func (i Identity) Elevated() bool {
	return i.Role == RoleSeller || i.Role == RoleAdmin
}

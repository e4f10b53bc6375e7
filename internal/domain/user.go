package domain

// Role of the acting identity, supplied by the auth layer and trusted as given.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Actor is the identity attached to every lifecycle operation.
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User is the loyalty-relevant slice of a user record. The balance is only
// adjusted through the loyalty ledger inside a transaction.
type User struct {
	ID            int64
	LoyaltyPoints int
}

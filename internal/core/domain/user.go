package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User represents an account holder. AccountNumber is the externally visible
// key that invoices reference; UserID is the internal primary key.
type User struct {
	UserID        string `json:"userID"`
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	Role          Role   `json:"role"`
	AuditFields

	// Refresh token state, only populated on the auth path.
	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

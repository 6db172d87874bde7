package models

import (
	"database/sql"
)

// User is the persistence representation of a user row.
type User struct {
	UserID        string `db:"user_id"`
	AccountNumber string `db:"account_number"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	Email         string `db:"email"`
	PasswordHash  string `db:"password_hash"`
	Role          string `db:"role"`
	AuditFields

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

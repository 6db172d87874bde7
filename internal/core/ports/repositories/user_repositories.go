package repositories

import (
	"context"
	"time"

	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their internal ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves all users.
	FindUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// SaveUserTx persists a new user within the supplied transaction.
	SaveUserTx(ctx context.Context, tx pgx.Tx, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserBulkWriter defines the set-oriented operations used by bulk ingestion.
// Both run on the caller's transaction so lookups and writes share one
// consistent view.
type UserBulkWriter interface {
	// FindUsersByAccountNumbers retrieves every user whose account number
	// appears in the given set, in no particular order.
	FindUsersByAccountNumbers(ctx context.Context, tx pgx.Tx, accountNumbers []string) ([]domain.User, error)

	// UpsertUsersTx inserts the given users, refreshing first name, last name
	// and the update timestamp for any account number that already exists.
	UpsertUsersTx(ctx context.Context, tx pgx.Tx, users []domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserBulkWriter
}

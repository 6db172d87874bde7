package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/dto"
	"github.com/invoiced-app/invoice_backend/internal/utils"
)

// accountCodeDigits is the length of generated admin account numbers.
const accountCodeDigits = 5

// accountCodeAttempts bounds retries when a generated account number collides
// with an existing row.
const accountCodeAttempts = 5

type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// Ensure UserService implements portssvc.UserSvcFacade
var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx)
}

// RegisterAdmin creates an ADMIN user with a generated numeric account
// number. Uniqueness of the number is enforced by the store; generation is
// retried on collision rather than tracked in-process.
func (s *UserService) RegisterAdmin(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAppError(400, "Email already taken", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	var lastErr error
	for attempt := 0; attempt < accountCodeAttempts; attempt++ {
		accountNumber, err := utils.GenerateAccountCode(accountCodeDigits)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to generate account number", err)
		}

		now := time.Now()
		user := domain.User{
			UserID:        uuid.NewString(),
			AccountNumber: accountNumber,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         email,
			PasswordHash:  passwordHash,
			Role:          domain.RoleAdmin,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		user.CreatedBy = user.UserID
		user.LastUpdatedBy = user.UserID

		err = s.userRepo.SaveUser(ctx, user)
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperrors.NewAppError(500, "failed to allocate a unique account number", lastErr)
}

// AuthenticateUser verifies email/password credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "Invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewAppError(401, "Invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *UserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiryTime)
}

func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

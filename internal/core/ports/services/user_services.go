package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// UserReaderSvc is the narrow read interface other services use to stamp
// audit names on ledger rows.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserSvcFacade exposes operator management and authentication.
type UserSvcFacade interface {
	UserReaderSvc

	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// Authenticate verifies the email/password pair and returns the user.
	// Fails with ErrForbidden on bad credentials or inactive users.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

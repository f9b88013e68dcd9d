package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/core/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Fatoumata Camara",
		Email:    "fatoumata@example.com",
		Password: "correct-horse-battery",
		Role:     string(domain.RoleManager),
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(domain.User)
			suite.NotEqual(req.Password, user.PasswordHash)
			suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
		}).
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, user.Role)
	suite.True(user.IsActive)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Fatoumata Camara",
		Email:    "fatoumata@example.com",
		Password: "correct-horse-battery",
		Role:     string(domain.RoleCashier),
	}

	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}
	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "owner@example.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleOwner,
		IsActive:     true,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, user.Email, "secret-password")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "owner@example.com",
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err = suite.service.Authenticate(ctx, user.Email, "wrong-password")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailAndInactive() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, err := suite.service.Authenticate(ctx, "nobody@example.com", "whatever")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	hashed, hashErr := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	suite.Require().NoError(hashErr)
	inactive := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "gone@example.com",
		PasswordHash: string(hashed),
		IsActive:     false,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, inactive.Email).Return(inactive, nil).Once()
	_, err = suite.service.Authenticate(ctx, inactive.Email, "secret-password")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

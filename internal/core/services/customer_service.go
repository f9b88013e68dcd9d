package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// customerService manages debtor accounts.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, users portssvc.UserReaderSvc) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService:  BaseService{Users: users},
		customerRepo: customerRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, restaurantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         name,
		Phone:        req.Phone,
		CreditLimit:  req.CreditLimit,
		IsActive:     true,
		AuditFields:  s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer")
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("name", customer.Name))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, restaurantID, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, restaurantID string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomersByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

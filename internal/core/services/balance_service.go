package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
)

// balanceService reconstructs balances by replaying the confirmed transaction
// history over the restaurant's opening balances. No balance is ever stored;
// every answer is recomputed from the journal.
type balanceService struct {
	BaseService
	bankRepo       portsrepo.BankTransactionRepositoryFacade
	restaurantRepo portsrepo.RestaurantRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(bankRepo portsrepo.BankTransactionRepositoryFacade, restaurantRepo portsrepo.RestaurantRepositoryFacade, users portssvc.UserReaderSvc) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService:    BaseService{Users: users},
		bankRepo:       bankRepo,
		restaurantRepo: restaurantRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// breakdownReasonOrder fixes the reason rows' presentation order.
var breakdownReasonOrder = []domain.TransactionReason{
	domain.ReasonSalesDeposit,
	domain.ReasonDebtCollection,
	domain.ReasonExpensePayment,
	domain.ReasonOwnerWithdrawal,
	domain.ReasonCapitalInjection,
	domain.ReasonOther,
}

// DailyCashFlow aggregates confirmed transactions per day and method in [from, to].
func (s *balanceService) DailyCashFlow(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.DailyCashFlow, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	txns, err := s.bankRepo.ListConfirmedTransactions(ctx, restaurantID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed transactions: %w", err)
	}

	fromDay := dayOf(from)
	byDay := make(map[time.Time]*domain.DailyCashFlow)
	for _, txn := range txns {
		day := dayOf(txn.Date)
		if day.Before(fromDay) {
			continue
		}
		flow, ok := byDay[day]
		if !ok {
			flow = &domain.DailyCashFlow{
				Date:             day,
				ByMethod:         make(map[domain.PaymentMethod]domain.MethodFlow),
				TotalDeposits:    decimal.Zero,
				TotalWithdrawals: decimal.Zero,
			}
			byDay[day] = flow
		}
		methodFlow := flow.ByMethod[txn.Method]
		if txn.Type == domain.Deposit {
			methodFlow.Deposits = methodFlow.Deposits.Add(txn.Amount)
			flow.TotalDeposits = flow.TotalDeposits.Add(txn.Amount)
		} else {
			methodFlow.Withdrawals = methodFlow.Withdrawals.Add(txn.Amount)
			flow.TotalWithdrawals = flow.TotalWithdrawals.Add(txn.Amount)
		}
		flow.ByMethod[txn.Method] = methodFlow
	}

	result := make([]domain.DailyCashFlow, 0, len(byDay))
	for _, flow := range byDay {
		result = append(result, *flow)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// BalanceHistory folds the entire confirmed history up to `to` from the
// opening balances and returns one closing balance per day in [from, to].
// Days with no activity carry the prior day's closing balance forward.
func (s *balanceService) BalanceHistory(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.DailyBalance, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	txns, err := s.bankRepo.ListConfirmedTransactions(ctx, restaurantID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed transactions: %w", err)
	}

	// Fold the full history, keeping the closing balance of every active day.
	running := restaurant.OpeningBalances()
	snapshots := make(map[time.Time]map[domain.PaymentMethod]decimal.Decimal)
	for _, txn := range txns {
		running[txn.Method] = running[txn.Method].Add(txn.SignedAmount())
		snapshots[dayOf(txn.Date)] = copyBalances(running)
	}

	// Seed the window with the latest closing balance before `from`, falling
	// back to the opening balances when the journal starts inside the window.
	fromDay := dayOf(from)
	toDay := dayOf(to)
	carry := restaurant.OpeningBalances()
	var seedDay time.Time
	for day, balances := range snapshots {
		if day.Before(fromDay) && (seedDay.IsZero() || day.After(seedDay)) {
			seedDay = day
			carry = balances
		}
	}

	var history []domain.DailyBalance
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		if balances, ok := snapshots[day]; ok {
			carry = balances
		}
		history = append(history, domain.DailyBalance{
			Date:     day,
			Balances: copyBalances(carry),
			Total:    sumBalances(carry),
		})
	}
	return history, nil
}

// Breakdown groups the window's confirmed transactions by reason and method.
func (s *balanceService) Breakdown(ctx context.Context, restaurantID string, from, to time.Time) (*domain.TransactionBreakdown, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	txns, err := s.bankRepo.ListConfirmedTransactions(ctx, restaurantID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed transactions: %w", err)
	}

	fromDay := dayOf(from)
	total := decimal.Zero
	byReason := make(map[domain.TransactionReason]decimal.Decimal)
	byMethod := make(map[domain.PaymentMethod]domain.MethodFlow)

	for _, txn := range txns {
		if dayOf(txn.Date).Before(fromDay) {
			continue
		}
		total = total.Add(txn.Amount)
		byReason[txn.Reason] = byReason[txn.Reason].Add(txn.Amount)

		methodFlow := byMethod[txn.Method]
		if txn.Type == domain.Deposit {
			methodFlow.Deposits = methodFlow.Deposits.Add(txn.Amount)
		} else {
			methodFlow.Withdrawals = methodFlow.Withdrawals.Add(txn.Amount)
		}
		byMethod[txn.Method] = methodFlow
	}

	breakdown := &domain.TransactionBreakdown{
		From:  from,
		To:    to,
		Total: total,
	}

	hundred := decimal.NewFromInt(100)
	for _, reason := range breakdownReasonOrder {
		amount, ok := byReason[reason]
		if !ok {
			continue
		}
		percentage := decimal.Zero
		if total.GreaterThan(decimal.Zero) {
			percentage = amount.Mul(hundred).DivRound(total, 2)
		}
		breakdown.ByReason = append(breakdown.ByReason, domain.ReasonBreakdownRow{
			Reason:     reason,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	for _, method := range domain.PaymentMethods {
		methodFlow, ok := byMethod[method]
		if !ok {
			continue
		}
		breakdown.ByMethod = append(breakdown.ByMethod, domain.MethodBreakdownRow{
			Method:      method,
			Deposits:    methodFlow.Deposits,
			Withdrawals: methodFlow.Withdrawals,
			Net:         methodFlow.Net(),
		})
	}
	return breakdown, nil
}

func validateWindow(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: 'to' date precedes 'from' date", apperrors.ErrValidation)
	}
	return nil
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func copyBalances(balances map[domain.PaymentMethod]decimal.Decimal) map[domain.PaymentMethod]decimal.Decimal {
	out := make(map[domain.PaymentMethod]decimal.Decimal, len(balances))
	for method, amount := range balances {
		out[method] = amount
	}
	return out
}

func sumBalances(balances map[domain.PaymentMethod]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range balances {
		total = total.Add(amount)
	}
	return total
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BankTransactionRepo: newPgxBankTransactionRepository(pool),
		DebtRepo:            newPgxDebtRepository(pool),
		CustomerRepo:        newPgxCustomerRepository(pool),
		ExpenseRepo:         newPgxExpenseRepository(pool),
		InventoryRepo:       newPgxInventoryRepository(pool),
		ReconciliationRepo:  newPgxReconciliationRepository(pool),
		RestaurantRepo:      newPgxRestaurantRepository(pool),
		UserRepo:            newPgxUserRepository(pool),
	}
}

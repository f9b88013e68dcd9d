package services

import (
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service comes first; the other services use it to resolve audit names.
	container.User = NewUserService(repos.UserRepo)
	users := portssvc.UserReaderSvc(container.User)

	container.Restaurant = NewRestaurantService(repos.RestaurantRepo, users)
	container.Customer = NewCustomerService(repos.CustomerRepo, users)
	container.BankTransaction = NewBankTransactionService(repos.BankTransactionRepo, users)
	container.Debt = NewDebtService(repos.DebtRepo, repos.CustomerRepo, users)
	container.Expense = NewExpenseService(repos.ExpenseRepo, users)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.RestaurantRepo, users)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.InventoryRepo, users)
	container.Balance = NewBalanceService(repos.BankTransactionRepo, repos.RestaurantRepo, users)

	return container
}

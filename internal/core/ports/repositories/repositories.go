package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BankTransactionRepo BankTransactionRepositoryFacade
	DebtRepo            DebtRepositoryFacade
	CustomerRepo        CustomerRepositoryFacade
	ExpenseRepo         ExpenseRepositoryFacade
	InventoryRepo       InventoryRepositoryFacade
	ReconciliationRepo  ReconciliationRepositoryFacade
	RestaurantRepo      RestaurantRepositoryFacade
	UserRepo            UserRepositoryFacade
}

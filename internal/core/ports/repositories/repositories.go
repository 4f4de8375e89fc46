package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	UserRepo        UserRepositoryWithTx
	WalletRepo      WalletRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	CustomFieldRepo CustomFieldRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	AuditRepo       AuditLogRepositoryFacade
	FeedJournalRepo FeedJournalRepositoryFacade
}

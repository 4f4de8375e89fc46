package pgsql

import (
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       &BaseRepository{Pool: dbPool},
		UserRepo:        newPgxUserRepository(dbPool),
		WalletRepo:      newPgxWalletRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		CustomFieldRepo: newPgxCustomFieldRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AuditRepo:       newPgxAuditLogRepository(dbPool),
		FeedJournalRepo: newPgxFeedJournalRepository(dbPool),
	}
}

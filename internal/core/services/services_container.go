package services

import (
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case audit entries are only stored.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.AuditPublisher, sheets portssvc.SpreadsheetWriter) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Every writer records through the audit service, so it comes first
	auditOptions := []AuditServiceOption{WithAuditDefaultLimit(cfg.AuditLogLimit)}
	if publisher != nil {
		auditOptions = append(auditOptions, WithAuditPublisher(publisher))
	}
	container.Audit = NewAuditService(repos.AuditRepo, auditOptions...)

	container.User = NewUserService(repos.UserRepo, repos.CategoryRepo)
	container.Token = NewTokenService(cfg, container.User)

	container.Wallet = NewWalletService(repos.TxManager, repos.WalletRepo, container.Audit)
	container.Category = NewCategoryService(repos.TxManager, repos.CategoryRepo, container.Audit)
	container.CustomField = NewCustomFieldService(repos.TxManager, repos.CustomFieldRepo, container.Audit)
	container.Transaction = NewTransactionService(
		repos.TxManager,
		repos.TransactionRepo,
		repos.WalletRepo,
		repos.CategoryRepo,
		repos.CustomFieldRepo,
		container.Audit,
	)
	container.FeedJournal = NewFeedJournalService(repos.TxManager, repos.FeedJournalRepo, container.Audit)

	container.Reporting = NewReportingService(repos.WalletRepo, repos.CategoryRepo, repos.TransactionRepo)
	container.Export = NewExportService(repos, container.Audit, sheets)

	return container
}

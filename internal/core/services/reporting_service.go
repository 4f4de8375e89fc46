package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const (
	overviewDays        = 30
	overviewTopExpenses = 5
)

// snapshot is the owner's data a report is computed from.
type snapshot struct {
	wallets      []domain.Wallet
	categories   []domain.Category
	transactions []domain.Transaction
}

type reportingService struct {
	BaseService
	walletRepo      portsrepo.WalletReader
	categoryRepo    portsrepo.CategoryReader
	transactionRepo portsrepo.TransactionReader
	now             func() time.Time
}

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock the overview window is anchored to.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates the report surface. It loads a snapshot and
// delegates every figure to the ledger package.
func NewReportingService(
	walletRepo portsrepo.WalletReader,
	categoryRepo portsrepo.CategoryReader,
	transactionRepo portsrepo.TransactionReader,
	options ...ReportingServiceOption,
) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		walletRepo:      walletRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) Balances(ctx context.Context, session domain.Session, includeInactive bool) ([]domain.WalletBalance, error) {
	snap, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}

	wallets := snap.wallets
	if !includeInactive {
		wallets = activeWallets(wallets)
	}
	return ledger.ComputeBalances(wallets, snap.transactions), nil
}

func (s *reportingService) RangeBalances(ctx context.Context, session domain.Session, from, to string) ([]domain.RangeBalance, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeRangeBalances(activeWallets(snap.wallets), snap.transactions, from, to), nil
}

func (s *reportingService) Summary(ctx context.Context, session domain.Session, from, to string) (*domain.Summary, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}
	summary := ledger.ComputeSummary(ledger.FilterByDateRange(snap.transactions, from, to), snap.categories)
	return &summary, nil
}

func (s *reportingService) Cashflow(ctx context.Context, session domain.Session, from, to string) ([]domain.DailyCashflow, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeDailyCashflow(ledger.FilterByDateRange(snap.transactions, from, to)), nil
}

// Overview covers the trailing 30 days including today.
func (s *reportingService) Overview(ctx context.Context, session domain.Session) (*domain.Overview, error) {
	snap, err := s.load(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	from := today.AddDate(0, 0, -(overviewDays - 1)).Format(domain.DateLayout)
	to := today.Format(domain.DateLayout)

	inWindow := ledger.FilterByDateRange(snap.transactions, from, to)
	summary := ledger.ComputeSummary(inWindow, snap.categories)
	balances := ledger.ComputeBalances(activeWallets(snap.wallets), snap.transactions)

	return &domain.Overview{
		From:             from,
		To:               to,
		Summary:          summary,
		TopExpenses:      ledger.TopCategories(summary.Breakdown, domain.FlowExpense, overviewTopExpenses),
		TotalBalance:     ledger.TotalBalance(balances),
		TransactionCount: len(inWindow),
	}, nil
}

// load fetches wallets, categories and every transaction concurrently.
func (s *reportingService) load(ctx context.Context, ownerID string) (*snapshot, error) {
	snap := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.wallets, err = s.walletRepo.ListWallets(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.categories, err = s.categoryRepo.ListCategories(gctx, ownerID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		snap.transactions, err = s.transactionRepo.ListAllTransactions(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load report snapshot", slog.String("owner_id", ownerID))
		return nil, err
	}
	return snap, nil
}

func activeWallets(wallets []domain.Wallet) []domain.Wallet {
	out := make([]domain.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out
}

// checkRange rejects malformed dates and reversed ranges. Empty bounds are
// open.
func checkRange(from, to string) error {
	if from != "" && !domain.IsValidDate(from) {
		return fmt.Errorf("%w: from must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if to != "" && !domain.IsValidDate(to) {
		return fmt.Errorf("%w: to must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: from %s is after to %s", apperrors.ErrValidation, from, to)
	}
	return nil
}

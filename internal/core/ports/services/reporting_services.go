package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only reports computed by the ledger
// engines from the owner's stored data.
type ReportingSvcFacade interface {
	// Balances returns current wallet balances. Inactive wallets are
	// included only on request.
	Balances(ctx context.Context, session domain.Session, includeInactive bool) ([]domain.WalletBalance, error)

	// RangeBalances returns opening, inflow, outflow and closing per wallet
	// for the inclusive range.
	RangeBalances(ctx context.Context, session domain.Session, from, to string) ([]domain.RangeBalance, error)

	// Summary returns income, expense, profit and the category breakdown.
	Summary(ctx context.Context, session domain.Session, from, to string) (*domain.Summary, error)

	// Cashflow returns daily income and expense in ascending date order.
	Cashflow(ctx context.Context, session domain.Session, from, to string) ([]domain.DailyCashflow, error)

	// Overview returns the dashboard for the trailing 30 days.
	Overview(ctx context.Context, session domain.Session) (*domain.Overview, error)
}

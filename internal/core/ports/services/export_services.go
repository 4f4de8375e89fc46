package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// ExportSvcFacade builds and writes spreadsheet exports. Every export is
// audited.
type ExportSvcFacade interface {
	ExportFinance(ctx context.Context, session domain.Session, req dto.FinanceExportRequest) (*domain.ExportResult, error)
	ExportJournal(ctx context.Context, session domain.Session, req dto.JournalExportRequest) (*domain.ExportResult, error)
}

// SpreadsheetWriter persists a workbook and returns where it can be found.
type SpreadsheetWriter interface {
	WriteWorkbook(ctx context.Context, wb domain.Workbook) (string, error)
}

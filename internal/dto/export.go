package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// FinanceExportRequest selects the transactions written to a finance workbook.
type FinanceExportRequest struct {
	From            string  `json:"from" binding:"required,isodate"`
	To              string  `json:"to" binding:"required,isodate"`
	WalletID        *string `json:"walletID"`        // Matches source or destination wallet
	IncludeAuditLog bool    `json:"includeAuditLog"` // Adds the NHAT_KY sheet
}

// JournalExportRequest selects the feed journal entries to export.
type JournalExportRequest struct {
	From string `json:"from" binding:"required,isodate"`
	To   string `json:"to" binding:"required,isodate"`
}

// SheetSummary describes one written sheet.
type SheetSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// ExportResponse describes a finished export.
type ExportResponse struct {
	FileName string         `json:"fileName"`
	Location string         `json:"location"`
	RowCount int            `json:"rowCount"`
	Sheets   []SheetSummary `json:"sheets"`
	AuditID  string         `json:"auditID"`
}

func ToExportResponse(r *domain.ExportResult) ExportResponse {
	sheets := make([]SheetSummary, len(r.Workbook.Sheets))
	for i, s := range r.Workbook.Sheets {
		sheets[i] = SheetSummary{Name: s.Name, Rows: len(s.Rows)}
	}
	return ExportResponse{
		FileName: r.FileName,
		Location: r.Location,
		RowCount: r.RowCount,
		Sheets:   sheets,
		AuditID:  r.AuditLog.AuditID,
	}
}

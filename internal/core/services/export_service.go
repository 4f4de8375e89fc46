package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const (
	sheetReadme       = "README"
	sheetTransactions = "GIAO_DICH"
	sheetByCategory   = "THEO_DANH_MUC"
	sheetAuditLog     = "NHAT_KY"
	sheetFeedJournal  = "NHAT_KY_CHO_AN"

	// exportAuditPageSize bounds each audit page read for the NHAT_KY sheet.
	exportAuditPageSize = 500
)

var flowLabels = map[domain.Flow]string{
	domain.FlowIncome:   "Thu",
	domain.FlowExpense:  "Chi",
	domain.FlowTransfer: "Chuyển khoản",
}

type exportService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	walletRepo      portsrepo.WalletReader
	categoryRepo    portsrepo.CategoryReader
	customFieldRepo portsrepo.CustomFieldReader
	transactionRepo portsrepo.TransactionReader
	journalRepo     portsrepo.FeedJournalReader
	auditRepo       portsrepo.AuditLogReader
	audit           portssvc.AuditRecorderSvc
	writer          portssvc.SpreadsheetWriter
	now             func() time.Time
}

// ExportServiceOption configures the export service.
type ExportServiceOption func(*exportService)

// WithExportClock overrides the clock stamped on the README sheet.
func WithExportClock(now func() time.Time) ExportServiceOption {
	return func(s *exportService) {
		s.now = now
	}
}

// NewExportService creates the export surface writing workbooks through
// writer.
func NewExportService(repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorderSvc, writer portssvc.SpreadsheetWriter, options ...ExportServiceOption) portssvc.ExportSvcFacade {
	svc := &exportService{
		txManager:       repos.TxManager,
		walletRepo:      repos.WalletRepo,
		categoryRepo:    repos.CategoryRepo,
		customFieldRepo: repos.CustomFieldRepo,
		transactionRepo: repos.TransactionRepo,
		journalRepo:     repos.FeedJournalRepo,
		auditRepo:       repos.AuditRepo,
		audit:           audit,
		writer:          writer,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportFinance writes the non-deleted transactions of the range, sorted by
// date, together with a summary and category breakdown.
func (s *exportService) ExportFinance(ctx context.Context, session domain.Session, req dto.FinanceExportRequest) (*domain.ExportResult, error) {
	if err := checkExportRange(req.From, req.To); err != nil {
		return nil, err
	}
	walletID := ""
	if req.WalletID != nil {
		walletID = strings.TrimSpace(*req.WalletID)
	}

	var (
		wallets    []domain.Wallet
		categories []domain.Category
		fields     []domain.CustomField
		txns       []domain.Transaction
		auditLogs  []domain.AuditLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wallets, err = s.walletRepo.ListWallets(gctx, session.OwnerID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.ListCategories(gctx, session.OwnerID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = s.customFieldRepo.ListCustomFields(gctx, session.OwnerID)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.transactionRepo.ListAllTransactions(gctx, session.OwnerID)
		return err
	})
	if req.IncludeAuditLog {
		g.Go(func() error {
			var err error
			auditLogs, err = s.auditLogsInRange(gctx, session.OwnerID, req.From, req.To)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load finance export data", slog.String("owner_id", session.OwnerID))
		return nil, err
	}

	var scoped []domain.Wallet
	var walletName string
	if walletID == "" {
		scoped = wallets
		walletName = "Tất cả"
	} else {
		for _, w := range wallets {
			if w.WalletID == walletID {
				scoped = []domain.Wallet{w}
				walletName = w.Name
			}
		}
		if scoped == nil {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
		}
	}

	selected := ledger.SortByDate(ledger.FilterByWallet(ledger.FilterByDateRange(txns, req.From, req.To), walletID))
	summary := ledger.ComputeSummary(selected, categories)
	balances := ledger.ComputeRangeBalances(scoped, txns, req.From, req.To)

	wb := domain.Workbook{
		FileName: fmt.Sprintf("so-quy_%s_%s", req.From, req.To),
		Sheets: []domain.Sheet{
			s.financeReadme(req.From, req.To, walletName, len(selected), summary, balances),
			transactionSheet(selected, wallets, categories, fields),
			categorySheet(summary),
		},
	}
	if req.IncludeAuditLog {
		wb.Sheets = append(wb.Sheets, auditSheet(auditLogs))
	}

	payload := map[string]any{
		"dateFrom": req.From,
		"dateTo":   req.To,
		"walletID": nilIfEmpty(walletID),
		"txnCount": len(selected),
		"fileName": wb.FileName,
	}
	return s.write(ctx, session, wb, domain.EntityExportFinance, payload, len(selected))
}

// ExportJournal writes the feed journal entries of the range in date order.
func (s *exportService) ExportJournal(ctx context.Context, session domain.Session, req dto.JournalExportRequest) (*domain.ExportResult, error) {
	if err := checkExportRange(req.From, req.To); err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ListFeedJournalsInRange(ctx, session.OwnerID, req.From, req.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load feed journal export data", slog.String("owner_id", session.OwnerID))
		return nil, err
	}

	sheet := domain.Sheet{
		Name:   sheetFeedJournal,
		Header: []string{"Ngày", "Ghi chú", "Thẻ", "Ảnh", "Ngày tạo"},
		Rows:   make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		image := ""
		if e.ImageURL != nil {
			image = *e.ImageURL
		}
		sheet.Rows = append(sheet.Rows, []string{
			e.JournalDate,
			e.Note,
			strings.Join(e.Tags, ", "),
			image,
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	wb := domain.Workbook{
		FileName: fmt.Sprintf("nhat-ky-cho-an_%s_%s", req.From, req.To),
		Sheets:   []domain.Sheet{sheet},
	}
	payload := map[string]any{
		"dateFrom":   req.From,
		"dateTo":     req.To,
		"entryCount": len(entries),
		"fileName":   wb.FileName,
	}
	return s.write(ctx, session, wb, domain.EntityExportJournal, payload, len(entries))
}

// write hands the workbook to the writer and records the export.
func (s *exportService) write(ctx context.Context, session domain.Session, wb domain.Workbook, entity domain.AuditEntity, payload map[string]any, rowCount int) (*domain.ExportResult, error) {
	location, err := s.writer.WriteWorkbook(ctx, wb)
	if err != nil {
		s.LogError(ctx, err, "Failed to write workbook", slog.String("file_name", wb.FileName))
		return nil, fmt.Errorf("failed to write workbook %s: %w", wb.FileName, err)
	}

	var entry *domain.AuditLog
	err = runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID: session.OwnerID,
			Actor:   session.Actor,
			Action:  domain.ActionExport,
			Entity:  entity,
			After:   payload,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record export", slog.String("file_name", wb.FileName))
		return nil, err
	}
	s.audit.Publish(ctx, *entry)

	s.LogInfo(ctx, "Export written",
		slog.String("file_name", wb.FileName),
		slog.String("location", location),
		slog.Int("rows", rowCount))
	return &domain.ExportResult{
		FileName: wb.FileName,
		Location: location,
		RowCount: rowCount,
		Workbook: wb,
		AuditLog: *entry,
	}, nil
}

// auditLogsInRange pages through the audit trail, newest first, until it
// passes the start of the range.
func (s *exportService) auditLogsInRange(ctx context.Context, ownerID, from, to string) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	var token *string
	for {
		page, next, err := s.auditRepo.ListAuditLogs(ctx, ownerID, domain.AuditLogFilter{}, exportAuditPageSize, token)
		if err != nil {
			return nil, err
		}
		for _, l := range page {
			day := l.CreatedAt.UTC().Format(domain.DateLayout)
			if day < from {
				return out, nil
			}
			if day <= to {
				out = append(out, l)
			}
		}
		if next == nil {
			return out, nil
		}
		token = next
	}
}

func (s *exportService) financeReadme(from, to, walletName string, count int, summary domain.Summary, balances []domain.RangeBalance) domain.Sheet {
	rows := [][]string{
		{"BÁO CÁO TÀI CHÍNH", ""},
		{"Ngày xuất", s.now().UTC().Format(time.RFC3339)},
		{"Kỳ báo cáo", fmt.Sprintf("%s đến %s", from, to)},
		{"Lọc ví", walletName},
		{"Tổng giao dịch", fmt.Sprint(count)},
		{"Tổng thu", utils.FormatVND(summary.Income)},
		{"Tổng chi", utils.FormatVND(summary.Expense)},
		{"Lợi nhuận", utils.FormatVND(summary.Profit)},
	}
	for _, b := range balances {
		rows = append(rows,
			[]string{"Đầu kỳ " + b.Name, utils.FormatVND(b.Opening)},
			[]string{"Cuối kỳ " + b.Name, utils.FormatVND(b.Closing)},
		)
	}
	return domain.Sheet{Name: sheetReadme, Header: []string{"Mục", "Giá trị"}, Rows: rows}
}

func transactionSheet(txns []domain.Transaction, wallets []domain.Wallet, categories []domain.Category, fields []domain.CustomField) domain.Sheet {
	walletNames := make(map[string]string, len(wallets))
	for _, w := range wallets {
		walletNames[w.WalletID] = w.Name
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.CategoryID] = c.Name
	}

	header := []string{"Ngày", "Loại", "Số tiền", "Ví", "Ví đích", "Danh mục", "Ghi chú", "Ngày tạo"}
	active := make([]domain.CustomField, 0, len(fields))
	for _, f := range fields {
		if f.IsActive {
			active = append(active, f)
			header = append(header, f.FieldName)
		}
	}

	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		row := []string{
			t.TxnDate,
			flowLabels[t.Flow],
			utils.FormatWithPrecision(t.Amount, int(domain.MoneyScale)),
			walletNames[t.WalletID],
			lookup(walletNames, t.ToWalletID),
			lookup(categoryNames, t.CategoryID),
			t.Note,
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, f := range active {
			row = append(row, formatCustomValue(t.CustomFields[f.FieldKey]))
		}
		rows = append(rows, row)
	}
	return domain.Sheet{Name: sheetTransactions, Header: header, Rows: rows}
}

func categorySheet(summary domain.Summary) domain.Sheet {
	rows := make([][]string, 0, len(summary.Breakdown))
	for _, c := range summary.Breakdown {
		rows = append(rows, []string{
			c.CategoryName,
			flowLabels[c.Flow],
			utils.FormatWithPrecision(c.Total, int(domain.MoneyScale)),
			fmt.Sprint(c.Count),
		})
	}
	return domain.Sheet{
		Name:   sheetByCategory,
		Header: []string{"Danh mục", "Loại", "Tổng tiền", "Số giao dịch"},
		Rows:   rows,
	}
}

func auditSheet(logs []domain.AuditLog) domain.Sheet {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		entityID := ""
		if l.EntityID != nil {
			entityID = *l.EntityID
		}
		rows = append(rows, []string{
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.Actor,
			string(l.Action),
			string(l.Entity),
			entityID,
		})
	}
	return domain.Sheet{
		Name:   sheetAuditLog,
		Header: []string{"Thời gian", "Người thực hiện", "Hành động", "Đối tượng", "Mã"},
		Rows:   rows,
	}
}

func lookup(names map[string]string, id *string) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func formatCustomValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// checkExportRange requires both bounds, unlike report ranges.
func checkExportRange(from, to string) error {
	if from == "" || to == "" {
		return fmt.Errorf("%w: export needs both from and to", apperrors.ErrValidation)
	}
	return checkRange(from, to)
}

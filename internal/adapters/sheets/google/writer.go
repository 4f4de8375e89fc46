package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	goauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// maxTitleLen is the longest tab title Google Sheets accepts.
const maxTitleLen = 100

// Writer exports workbooks as tabs of one shared spreadsheet. Each sheet of
// a workbook becomes a tab named "<fileName>_<sheetName>"; re-exporting the
// same range overwrites those tabs.
type Writer struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// NewWriter builds a writer from a service account. credentialsJSON wins
// over credentialsFile when both are set.
func NewWriter(ctx context.Context, spreadsheetID, credentialsJSON, credentialsFile string) (*Writer, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet ID is required")
	}

	raw := []byte(credentialsJSON)
	if len(raw) == 0 {
		if credentialsFile == "" {
			return nil, errors.New("missing service account credentials")
		}
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		raw = b
	}

	creds, err := goauth.CredentialsFromJSON(ctx, raw, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	svc, err := gsheet.NewService(ctx, goption.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Writer{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// WriteWorkbook writes every sheet of wb and returns a link to its first tab.
func (w *Writer) WriteWorkbook(ctx context.Context, wb domain.Workbook) (string, error) {
	if len(wb.Sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}

	existing, err := w.tabs(ctx)
	if err != nil {
		return "", err
	}

	titles := make([]string, len(wb.Sheets))
	var add []*gsheet.Request
	for i, sh := range wb.Sheets {
		titles[i] = tabTitle(wb.FileName, sh.Name)
		if _, ok := existing[titles[i]]; !ok {
			add = append(add, &gsheet.Request{
				AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: titles[i]}},
			})
		}
	}

	if len(add) > 0 {
		resp, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{Requests: add}).
			Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("add sheets: %w", err)
		}
		for _, reply := range resp.Replies {
			if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
				existing[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
			}
		}
	}

	ranges := make([]string, len(titles))
	data := make([]*gsheet.ValueRange, len(titles))
	for i, sh := range wb.Sheets {
		ranges[i] = quoteTitle(titles[i])
		data[i] = &gsheet.ValueRange{Range: quoteTitle(titles[i]) + "!A1", Values: toValues(sh)}
	}

	if _, err := w.svc.Spreadsheets.Values.BatchClear(w.spreadsheetID, &gsheet.BatchClearValuesRequest{Ranges: ranges}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheets: %w", err)
	}
	if _, err := w.svc.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write sheets: %w", err)
	}

	slog.InfoContext(ctx, "Workbook written to Google Sheets",
		slog.String("fileName", wb.FileName), slog.Int("sheets", len(wb.Sheets)))
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", w.spreadsheetID, existing[titles[0]]), nil
}

func (w *Writer) tabs(ctx context.Context) (map[string]int64, error) {
	ss, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	out := make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			out[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return out, nil
}

func tabTitle(fileName, sheetName string) string {
	title := sheetName
	if fileName != "" {
		title = fileName + "_" + sheetName
	}
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[len(r)-maxTitleLen:])
	}
	return title
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// toValues lays the header and rows out for a USER_ENTERED write. Cells
// that would be read as formulas are forced to text.
func toValues(sh domain.Sheet) [][]interface{} {
	out := make([][]interface{}, 0, len(sh.Rows)+1)
	out = append(out, toRow(sh.Header))
	for _, r := range sh.Rows {
		out = append(out, toRow(r))
	}
	return out
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		if isFormulaLike(c) {
			c = "'" + c
		}
		row[i] = c
	}
	return row
}

// isFormulaLike reports whether USER_ENTERED would parse c as a formula.
// Negative amounts start with "-" too and must stay numbers.
func isFormulaLike(c string) bool {
	switch {
	case strings.HasPrefix(c, "="), strings.HasPrefix(c, "+"), strings.HasPrefix(c, "@"):
		return true
	case strings.HasPrefix(c, "-"):
		_, err := decimal.NewFromString(c)
		return err != nil
	}
	return false
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// Writer keeps exported workbooks in process. Used when no spreadsheet is
// configured; the export response still carries the full workbook.
type Writer struct {
	mu        sync.Mutex
	workbooks map[string]domain.Workbook
}

func New() *Writer {
	return &Writer{workbooks: make(map[string]domain.Workbook)}
}

// WriteWorkbook stores wb under its file name, replacing an earlier export
// of the same name.
func (w *Writer) WriteWorkbook(_ context.Context, wb domain.Workbook) (string, error) {
	if wb.FileName == "" {
		return "", errors.New("workbook has no file name")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workbooks[wb.FileName] = wb
	return "memory://" + wb.FileName, nil
}

// Get returns a stored workbook.
func (w *Writer) Get(fileName string) (domain.Workbook, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wb, ok := w.workbooks[fileName]
	return wb, ok
}

// Names lists stored workbooks in name order.
func (w *Writer) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.workbooks))
	for name := range w.workbooks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

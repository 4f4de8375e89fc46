package ledger

import (
	"sort"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

type breakdownKey struct {
	flow       domain.Flow
	categoryID string
}

// ComputeSummary totals income and expense and breaks them down by
// category. Transfers and deleted rows never contribute. Breakdown rows are
// ordered by descending total; equal totals keep first-occurrence order.
func ComputeSummary(txns []domain.Transaction, categories []domain.Category) domain.Summary {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}

	income := decimal.Zero
	expense := decimal.Zero
	index := make(map[breakdownKey]int)
	breakdown := make([]domain.CategoryTotal, 0)

	for _, t := range txns {
		if t.IsDeleted || !t.Flow.IsCategorized() {
			continue
		}
		switch t.Flow {
		case domain.FlowIncome:
			income = income.Add(t.Amount)
		case domain.FlowExpense:
			expense = expense.Add(t.Amount)
		}

		key := breakdownKey{flow: t.Flow}
		if t.CategoryID != nil {
			if _, ok := names[*t.CategoryID]; ok {
				key.categoryID = *t.CategoryID
			}
		}

		i, ok := index[key]
		if !ok {
			row := domain.CategoryTotal{
				Flow:         t.Flow,
				CategoryName: domain.UncategorizedLabel,
				Total:        decimal.Zero,
			}
			if key.categoryID != "" {
				id := key.categoryID
				row.CategoryID = &id
				row.CategoryName = names[id]
			}
			i = len(breakdown)
			index[key] = i
			breakdown = append(breakdown, row)
		}
		breakdown[i].Total = breakdown[i].Total.Add(t.Amount)
		breakdown[i].Count++
	}

	sort.SliceStable(breakdown, func(a, b int) bool {
		return breakdown[a].Total.GreaterThan(breakdown[b].Total)
	})

	return domain.Summary{
		Income:    income,
		Expense:   expense,
		Profit:    income.Sub(expense),
		Breakdown: breakdown,
	}
}

// TopCategories returns at most n breakdown rows of the given flow, keeping
// the breakdown's order.
func TopCategories(breakdown []domain.CategoryTotal, flow domain.Flow, n int) []domain.CategoryTotal {
	out := make([]domain.CategoryTotal, 0, n)
	for _, row := range breakdown {
		if len(out) >= n {
			break
		}
		if row.Flow == flow {
			out = append(out, row)
		}
	}
	return out
}

package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// vndFormatter groups thousands with "." the way vi-VN does.
var vndFormatter = money.NewFormatter(0, ",", ".", "₫", "1 $")

// FormatVND renders a ledger amount for people, e.g. "1.500.000 ₫".
// Amounts are rounded to the ledger's money scale first.
func FormatVND(amount decimal.Decimal) string {
	return vndFormatter.Format(amount.Round(domain.MoneyScale).IntPart())
}

// FormatWithPrecision formats an amount with the given precision.
// Spreadsheet cells use precision 0 so the sheet can still sum them.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

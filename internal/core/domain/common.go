package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
	Version       int64     `json:"version"`       // Incremented on every update
}

// DateLayout is the calendar date format used for txn_date and journal_date.
// Dates in this layout sort lexically in chronological order.
const DateLayout = "2006-01-02"

// MoneyScale is the number of decimal places money values may carry (VND).
const MoneyScale int32 = 0

// CurrencyCode is the single implicit currency of the ledger.
const CurrencyCode = "VND"

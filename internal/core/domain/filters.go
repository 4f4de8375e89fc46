package domain

// TransactionFilter narrows a transaction listing. Empty fields match
// everything; From and To are inclusive.
type TransactionFilter struct {
	From           string
	To             string
	WalletID       string // Matches wallet_id or to_wallet_id
	Flow           Flow
	IncludeDeleted bool
}

// AuditLogFilter narrows an audit listing.
type AuditLogFilter struct {
	Action AuditAction
	Entity AuditEntity
}

// FeedJournalFilter narrows a feed journal listing.
type FeedJournalFilter struct {
	From string
	To   string
	Tag  string
}

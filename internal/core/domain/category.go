package domain

// Category classifies income or expense transactions. TRANSFER never has one.
type Category struct {
	CategoryID string  `json:"categoryID"`
	OwnerID    string  `json:"ownerID"`
	Name       string  `json:"name"`
	Flow       Flow    `json:"flow"`               // INCOME or EXPENSE only
	ParentID   *string `json:"parentID,omitempty"` // Reserved for hierarchy
	SortOrder  int     `json:"sortOrder"`
	IsActive   bool    `json:"isActive"`
	AuditFields
}

// UncategorizedLabel is the breakdown label for transactions whose category
// is missing or no longer resolvable.
const UncategorizedLabel = "Other"

package models

type Category struct {
	CategoryID string  `db:"category_id"`
	OwnerID    string  `db:"owner_id"`
	Name       string  `db:"name"`
	Flow       string  `db:"flow"`
	ParentID   *string `db:"parent_id"`
	SortOrder  int     `db:"sort_order"`
	IsActive   bool    `db:"is_active"`
	AuditFields
}

package models

type FeedJournal struct {
	JournalID   string   `db:"journal_id"`
	OwnerID     string   `db:"owner_id"`
	JournalDate string   `db:"journal_date"`
	ImageURL    *string  `db:"image_url"`
	Note        string   `db:"note"`
	Tags        []string `db:"tags"`
	AuditFields
}

package domain

import "strings"

// FeedJournal is an operations diary entry (feeding, water, medicine).
// It is independent of the financial ledger.
type FeedJournal struct {
	JournalID   string   `json:"journalID"`
	OwnerID     string   `json:"ownerID"`
	JournalDate string   `json:"journalDate"` // YYYY-MM-DD
	ImageURL    *string  `json:"imageURL,omitempty"`
	Note        string   `json:"note"`
	Tags        []string `json:"tags"`
	AuditFields
}

// NormalizeTags trims, drops empties and de-duplicates while keeping the
// order of first appearance.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}


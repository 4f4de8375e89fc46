package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

func ToModelFeedJournal(d domain.FeedJournal) models.FeedJournal {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.FeedJournal{
		JournalID:   d.JournalID,
		OwnerID:     d.OwnerID,
		JournalDate: d.JournalDate,
		ImageURL:    d.ImageURL,
		Note:        d.Note,
		Tags:        tags,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFeedJournal(m models.FeedJournal) domain.FeedJournal {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.FeedJournal{
		JournalID:   m.JournalID,
		OwnerID:     m.OwnerID,
		JournalDate: m.JournalDate,
		ImageURL:    m.ImageURL,
		Note:        m.Note,
		Tags:        tags,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFeedJournalSlice(ms []models.FeedJournal) []domain.FeedJournal {
	ds := make([]domain.FeedJournal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeedJournal(m)
	}
	return ds
}

package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// CreateFeedJournalRequest records an operations diary entry. ImageURL
// points at an already hosted image.
type CreateFeedJournalRequest struct {
	JournalDate string   `json:"journalDate" binding:"required,isodate"`
	ImageURL    *string  `json:"imageURL" binding:"omitempty,url"`
	Note        string   `json:"note" binding:"max=2000"`
	Tags        []string `json:"tags" binding:"max=20,dive,max=50"`
}

// ListFeedJournalsParams defines query parameters for listing journal entries.
type ListFeedJournalsParams struct {
	From      string  `form:"from" binding:"omitempty,isodate"`
	To        string  `form:"to" binding:"omitempty,isodate"`
	Tag       string  `form:"tag"`
	Limit     int     `form:"limit,default=30" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

func (p ListFeedJournalsParams) Filter() domain.FeedJournalFilter {
	return domain.FeedJournalFilter{From: p.From, To: p.To, Tag: p.Tag}
}

type FeedJournalResponse struct {
	JournalID   string    `json:"journalID"`
	JournalDate string    `json:"journalDate"`
	ImageURL    *string   `json:"imageURL,omitempty"`
	Note        string    `json:"note"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

func ToFeedJournalResponse(j *domain.FeedJournal) FeedJournalResponse {
	return FeedJournalResponse{
		JournalID:   j.JournalID,
		JournalDate: j.JournalDate,
		ImageURL:    j.ImageURL,
		Note:        j.Note,
		Tags:        j.Tags,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
}

type ListFeedJournalsResponse struct {
	FeedJournals []FeedJournalResponse `json:"feedJournals"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func ToListFeedJournalsResponse(entries []domain.FeedJournal, nextToken *string) ListFeedJournalsResponse {
	res := make([]FeedJournalResponse, len(entries))
	for i := range entries {
		res[i] = ToFeedJournalResponse(&entries[i])
	}
	return ListFeedJournalsResponse{FeedJournals: res, NextToken: nextToken}
}

package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/farm_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFeedJournalRepository struct {
	BaseRepository
}

func newPgxFeedJournalRepository(pool *pgxpool.Pool) portsrepo.FeedJournalRepositoryFacade {
	return &PgxFeedJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeedJournalRepositoryFacade = (*PgxFeedJournalRepository)(nil)

const feedJournalColumns = `journal_id, owner_id, journal_date::text, image_url, note, tags,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanFeedJournal(row rowScanner) (models.FeedJournal, error) {
	var m models.FeedJournal
	err := row.Scan(
		&m.JournalID,
		&m.OwnerID,
		&m.JournalDate,
		&m.ImageURL,
		&m.Note,
		&m.Tags,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func collectFeedJournals(rows pgx.Rows) ([]models.FeedJournal, error) {
	defer rows.Close()
	entries := []models.FeedJournal{}
	for rows.Next() {
		m, err := scanFeedJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed journal row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed journal rows: %w", err)
	}
	return entries, nil
}

func (r *PgxFeedJournalRepository) FindFeedJournalByID(ctx context.Context, ownerID, journalID string) (*domain.FeedJournal, error) {
	query := `SELECT ` + feedJournalColumns + ` FROM feed_journals WHERE owner_id = $1 AND journal_id = $2;`
	m, err := scanFeedJournal(r.Pool.QueryRow(ctx, query, ownerID, journalID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find feed journal "+journalID)
	}
	j := mapping.ToDomainFeedJournal(m)
	return &j, nil
}

func (r *PgxFeedJournalRepository) FindFeedJournalForUpdate(ctx context.Context, tx pgx.Tx, ownerID, journalID string) (*domain.FeedJournal, error) {
	query := `SELECT ` + feedJournalColumns + ` FROM feed_journals WHERE owner_id = $1 AND journal_id = $2 FOR UPDATE;`
	m, err := scanFeedJournal(tx.QueryRow(ctx, query, ownerID, journalID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock feed journal "+journalID)
	}
	j := mapping.ToDomainFeedJournal(m)
	return &j, nil
}

func (r *PgxFeedJournalRepository) ListFeedJournals(ctx context.Context, ownerID string, filter domain.FeedJournalFilter, limit int, nextToken *string) ([]domain.FeedJournal, *string, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.From != "" {
		conds = append(conds, "journal_date >= "+arg(filter.From)+"::date")
	}
	if filter.To != "" {
		conds = append(conds, "journal_date <= "+arg(filter.To)+"::date")
	}
	if filter.Tag != "" {
		conds = append(conds, arg(filter.Tag)+" = ANY(tags)")
	}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 3 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(journal_date, created_at, journal_id) < (%s::date, %s, %s)",
			arg(fields[0]), arg(createdAt), arg(fields[2])))
	}

	query := `SELECT ` + feedJournalColumns + ` FROM feed_journals WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY journal_date DESC, created_at DESC, journal_id DESC LIMIT ` + arg(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query feed journals: %w", err)
	}
	entries, err := collectFeedJournals(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeMultiFieldToken(last.JournalDate, last.CreatedAt.Format(time.RFC3339Nano), last.JournalID)
		newNextToken = &token
		entries = entries[:limit]
	}
	return mapping.ToDomainFeedJournalSlice(entries), newNextToken, nil
}

func (r *PgxFeedJournalRepository) ListFeedJournalsInRange(ctx context.Context, ownerID, from, to string) ([]domain.FeedJournal, error) {
	query := `SELECT ` + feedJournalColumns + ` FROM feed_journals
		WHERE owner_id = $1 AND journal_date >= $2::date AND journal_date <= $3::date
		ORDER BY journal_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed journals in range: %w", err)
	}
	entries, err := collectFeedJournals(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainFeedJournalSlice(entries), nil
}

func (r *PgxFeedJournalRepository) SaveFeedJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.FeedJournal) error {
	m := mapping.ToModelFeedJournal(entry)
	query := `
		INSERT INTO feed_journals (journal_id, owner_id, journal_date, image_url, note, tags,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.OwnerID,
		m.JournalDate,
		m.ImageURL,
		m.Note,
		m.Tags,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: feed journal with ID %s already exists", apperrors.ErrDuplicate, m.JournalID)
		}
		return fmt.Errorf("failed to insert feed journal: %w", err)
	}
	return nil
}

func (r *PgxFeedJournalRepository) DeleteFeedJournalInTx(ctx context.Context, tx pgx.Tx, ownerID, journalID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM feed_journals WHERE owner_id = $1 AND journal_id = $2;`, ownerID, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete feed journal %s: %w", journalID, err)
	}
	return expectOne(tag)
}

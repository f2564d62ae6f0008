package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	"github.com/daybookhq/bookkeeping_app/internal/models"
	"github.com/daybookhq/bookkeeping_app/internal/utils/mapping"
	"github.com/daybookhq/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// deferNumberingConstraint relaxes the (entry_date, no) uniqueness check
// until commit, so renumbering may pass through transient duplicates.
const deferNumberingConstraint = `SET CONSTRAINTS journal_entries_date_no_uq DEFERRED;`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal
// entry and line item data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

const entryColumns = `entry_id, entry_date, no, note, created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `line_item_id, entry_id, is_debit, no, currency_code, account_id, description, amount, original_line_item_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.No,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLineItem(row pgx.Row) (*models.JournalEntryLineItem, error) {
	var m models.JournalEntryLineItem
	err := row.Scan(
		&m.LineItemID,
		&m.EntryID,
		&m.IsDebit,
		&m.No,
		&m.CurrencyCode,
		&m.AccountID,
		&m.Description,
		&m.Amount,
		&m.OriginalLineItemID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPostedLineItem(rows pgx.Rows) (*domain.PostedLineItem, error) {
	var m models.JournalEntryLineItem
	var entryDate time.Time
	var entryNo int
	err := rows.Scan(
		&m.LineItemID,
		&m.EntryID,
		&m.IsDebit,
		&m.No,
		&m.CurrencyCode,
		&m.AccountID,
		&m.Description,
		&m.Amount,
		&m.OriginalLineItemID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&entryDate,
		&entryNo,
	)
	if err != nil {
		return nil, err
	}
	return &domain.PostedLineItem{
		JournalEntryLineItem: mapping.ToDomainLineItem(m),
		EntryDate:            domain.DateOnly(entryDate),
		EntryNo:              entryNo,
	}, nil
}

// FindEntryByID retrieves a journal entry header by ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntriesByDate retrieves the entries of one calendar date ordered
// by position, optionally excluding an entry being relocated.
func (r *PgxJournalEntryRepository) FindEntriesByDate(ctx context.Context, date time.Time, excludeEntryID *string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_date = $1 AND ($2::text IS NULL OR entry_id <> $2) ORDER BY no;`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(date), excludeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by date: %w", err)
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainJournalEntrySlice(ms), rows.Err()
}

// ListEntries retrieves a (date, no)-ordered page of entries.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, from *time.Time, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	afterDate := time.Time{}
	afterNo := 0
	if nextToken != nil && *nextToken != "" {
		var err error
		afterDate, afterNo, err = pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid entries page token", apperrors.ErrValidation)
		}
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE (entry_date, no) > ($1, $2)
		  AND ($3::date IS NULL OR entry_date >= $3)
		  AND ($4::date IS NULL OR entry_date <= $4)
		ORDER BY entry_date, no
		LIMIT $5;
	`
	rows, err := r.Pool.Query(ctx, query, afterDate, afterNo, from, to, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		t := pagination.EncodeEntryToken(last.EntryDate, last.No)
		token = &t
	}
	return mapping.ToDomainJournalEntrySlice(ms), token, nil
}

// FindLineItemsByEntryID retrieves an entry's line items, debits first,
// each side in position order.
func (r *PgxJournalEntryRepository) FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM journal_entry_line_items WHERE entry_id = $1 ORDER BY is_debit DESC, no;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var ms []models.JournalEntryLineItem
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainLineItemSlice(ms), rows.Err()
}

// FindPostedLineItemsByIDs retrieves line items joined with their
// entry's date and position, keyed by ID.
func (r *PgxJournalEntryRepository) FindPostedLineItemsByIDs(ctx context.Context, lineItemIDs []string) (map[string]domain.PostedLineItem, error) {
	if len(lineItemIDs) == 0 {
		return map[string]domain.PostedLineItem{}, nil
	}
	query := postedLineItemSelect + ` WHERE li.line_item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, lineItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted line items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.PostedLineItem)
	for rows.Next() {
		p, err := scanPostedLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted line item: %w", err)
		}
		out[p.LineItemID] = *p
	}
	return out, rows.Err()
}

const postedLineItemSelect = `
	SELECT li.line_item_id, li.entry_id, li.is_debit, li.no, li.currency_code, li.account_id,
	       li.description, li.amount, li.original_line_item_id,
	       li.created_at, li.created_by, li.last_updated_at, li.last_updated_by,
	       e.entry_date, e.no
	FROM journal_entry_line_items li
	JOIN journal_entries e ON e.entry_id = li.entry_id`

// FindOffsetsByOriginalIDs retrieves the offsets linked to each original ID.
func (r *PgxJournalEntryRepository) FindOffsetsByOriginalIDs(ctx context.Context, originalIDs []string) (map[string][]domain.JournalEntryLineItem, error) {
	if len(originalIDs) == 0 {
		return map[string][]domain.JournalEntryLineItem{}, nil
	}
	query := `SELECT ` + lineItemColumns + ` FROM journal_entry_line_items WHERE original_line_item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, originalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query offsets: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.JournalEntryLineItem)
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offset: %w", err)
		}
		li := mapping.ToDomainLineItem(*m)
		out[*li.OriginalLineItemID] = append(out[*li.OriginalLineItemID], li)
	}
	return out, rows.Err()
}

// FindOffsetHolderDates retrieves the distinct dates of entries holding
// offsets against the given entry's line items, earliest first.
func (r *PgxJournalEntryRepository) FindOffsetHolderDates(ctx context.Context, entryID string) ([]time.Time, error) {
	query := `
		SELECT DISTINCT e.entry_date
		FROM journal_entry_line_items off
		JOIN journal_entries e ON e.entry_id = off.entry_id
		WHERE off.original_line_item_id IN (
			SELECT line_item_id FROM journal_entry_line_items WHERE entry_id = $1
		)
		ORDER BY e.entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offset holder dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan offset holder date: %w", err)
		}
		dates = append(dates, domain.DateOnly(d))
	}
	return dates, rows.Err()
}

// FindOriginalLineItems retrieves an account's items on the given side
// with no original reference of their own, in stored order.
func (r *PgxJournalEntryRepository) FindOriginalLineItems(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error) {
	query := postedLineItemSelect + `
	WHERE li.account_id = $1 AND li.is_debit = $2 AND li.original_line_item_id IS NULL
	ORDER BY e.entry_date, e.no, li.no;`
	return r.queryPostedLineItems(ctx, query, accountID, side == domain.Debit)
}

// FindUnmatchedSettlements retrieves settlement-side items on an account
// that are not yet linked to an original.
func (r *PgxJournalEntryRepository) FindUnmatchedSettlements(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error) {
	query := postedLineItemSelect + `
	WHERE li.account_id = $1 AND li.is_debit = $2 AND li.original_line_item_id IS NULL
	ORDER BY e.entry_date, e.no, li.is_debit DESC, li.no;`
	return r.queryPostedLineItems(ctx, query, accountID, side == domain.Debit)
}

func (r *PgxJournalEntryRepository) queryPostedLineItems(ctx context.Context, query string, args ...any) ([]domain.PostedLineItem, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted line items: %w", err)
	}
	defer rows.Close()

	var items []domain.PostedLineItem
	for rows.Next() {
		p, err := scanPostedLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted line item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CountOffsetsReferencingEntry counts offsets held by other entries that
// reference any line item of the given entry.
func (r *PgxJournalEntryRepository) CountOffsetsReferencingEntry(ctx context.Context, entryID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entry_line_items off
		WHERE off.entry_id <> $1
		  AND off.original_line_item_id IN (
			SELECT line_item_id FROM journal_entry_line_items WHERE entry_id = $1
		  );
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, entryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count referencing offsets: %w", err)
	}
	return count, nil
}

// SaveEntry applies one collected edit in a single transaction: header
// upsert, per-date renumbering (under deferred uniqueness), line item
// deletes, then line item upserts.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, params portsrepo.SaveEntryParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, deferNumberingConstraint); err != nil {
		return fmt.Errorf("failed to defer numbering constraint: %w", err)
	}

	entry := mapping.ToModelJournalEntry(params.Entry)
	if params.IsNewEntry {
		insertEntry := `
			INSERT INTO journal_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		if _, err := tx.Exec(ctx, insertEntry,
			entry.EntryID, entry.EntryDate, entry.No, entry.Note,
			entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
		}
	} else {
		updateEntry := `
			UPDATE journal_entries
			SET entry_date = $2, no = $3, note = $4, last_updated_at = $5, last_updated_by = $6
			WHERE entry_id = $1;
		`
		if _, err := tx.Exec(ctx, updateEntry,
			entry.EntryID, entry.EntryDate, entry.No, entry.Note,
			entry.LastUpdatedAt, entry.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to update journal entry %s: %w", entry.EntryID, err)
		}
	}

	if err := applyRenumberOps(ctx, tx, params.RenumberOps, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return err
	}

	if len(params.DeleteLineItemIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_line_items WHERE line_item_id = ANY($1);`, params.DeleteLineItemIDs); err != nil {
			return fmt.Errorf("failed to delete removed line items: %w", err)
		}
	}

	batch := &pgx.Batch{}
	insertItem := `
		INSERT INTO journal_entry_line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	updateItem := `
		UPDATE journal_entry_line_items
		SET is_debit = $2, no = $3, currency_code = $4, account_id = $5,
		    description = $6, amount = $7, original_line_item_id = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE line_item_id = $1;
	`
	for _, li := range params.Items {
		m := mapping.ToModelLineItem(li)
		if params.NewItemIDs[li.LineItemID] {
			batch.Queue(insertItem,
				m.LineItemID, m.EntryID, m.IsDebit, m.No, m.CurrencyCode, m.AccountID,
				m.Description, m.Amount, m.OriginalLineItemID,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
		} else {
			batch.Queue(updateItem,
				m.LineItemID, m.IsDebit, m.No, m.CurrencyCode, m.AccountID,
				m.Description, m.Amount, m.OriginalLineItemID,
				m.LastUpdatedAt, m.LastUpdatedBy,
			)
		}
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert line items for entry %s: %w", entry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes an entry with its line items and closes the
// numbering gap on its date in the same transaction.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string, renumberOps []portsrepo.EntryNumberUpdate, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, deferNumberingConstraint); err != nil {
		return fmt.Errorf("failed to defer numbering constraint: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_line_items WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete line items of %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyRenumberOps(ctx, tx, renumberOps, updatedBy, updatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateEntryNumbers rewrites per-date positions inside a
// constraint-deferred transaction.
func (r *PgxJournalEntryRepository) UpdateEntryNumbers(ctx context.Context, updates []portsrepo.EntryNumberUpdate, updatedBy string, updatedAt time.Time) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, deferNumberingConstraint); err != nil {
		return fmt.Errorf("failed to defer numbering constraint: %w", err)
	}
	if err := applyRenumberOps(ctx, tx, updates, updatedBy, updatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func applyRenumberOps(ctx context.Context, tx pgx.Tx, updates []portsrepo.EntryNumberUpdate, updatedBy string, updatedAt time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `UPDATE journal_entries SET no = $2, last_updated_at = $3, last_updated_by = $4 WHERE entry_id = $1;`
	for _, u := range updates {
		batch.Queue(query, u.EntryID, u.No, updatedAt, updatedBy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to renumber %d entries: %w", len(updates), err)
	}
	return nil
}

// LinkOffsets sets original references for matched pairs, skipping any
// offset already linked. Returns the number of rows updated.
func (r *PgxJournalEntryRepository) LinkOffsets(ctx context.Context, links []domain.MatchPair, updatedBy string, updatedAt time.Time) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entry_line_items
		SET original_line_item_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE line_item_id = $1 AND original_line_item_id IS NULL;
	`
	linked := 0
	for _, pair := range links {
		tag, err := tx.Exec(ctx, query, pair.OffsetLineItemID, pair.OriginalLineItemID, updatedAt, updatedBy)
		if err != nil {
			return 0, fmt.Errorf("failed to link offset %s: %w", pair.OffsetLineItemID, err)
		}
		linked += int(tag.RowsAffected())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return linked, nil
}

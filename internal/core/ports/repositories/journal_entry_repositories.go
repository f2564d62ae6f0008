package repositories

import (
	"context"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
)

// EntryNumberUpdate assigns a new per-date position to one journal entry.
type EntryNumberUpdate struct {
	EntryID string
	No      int
}

/// SaveEntryParams carries one journal-entry edit as a single atomic unit:
// the final entry header, the final line-item set (inserts and updates),
// line items to delete, and the per-date renumbering of other entries the
// relocation requires. The repository applies all of it in one database
// transaction with the (entry_date, no) uniqueness check deferred.
type SaveEntryParams struct {
	Entry             domain.JournalEntry
	IsNewEntry        bool
	Items             []domain.JournalEntryLineItem
	NewItemIDs        map[string]bool
	DeleteLineItemIDs []string
	RenumberOps       []EntryNumberUpdate
}

// JournalEntryReader defines read operations for journal entry headers
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByDate retrieves all entries on a calendar date ordered by no,
	// optionally excluding one entry (used while relocating it).
	FindEntriesByDate(ctx context.Context, date time.Time, excludeEntryID *string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries ordered by (date, no),
	// optionally bounded to [from, to].
	ListEntries(ctx context.Context, from *time.Time, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// LineItemReader defines read operations for journal entry line items
type LineItemReader interface {
	// FindLineItemsByEntryID retrieves the line items of one entry ordered by (side, no).
	FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error)

	// FindPostedLineItemsByIDs retrieves line items joined with their entry's
	// date and position, keyed by line item ID. Missing IDs are absent.
	FindPostedLineItemsByIDs(ctx context.Context, lineItemIDs []string) (map[string]domain.PostedLineItem, error)

	// FindOffsetsByOriginalIDs retrieves, for each original ID, the line items
	// whose original_line_item_id references it.
	FindOffsetsByOriginalIDs(ctx context.Context, originalIDs []string) (map[string][]domain.JournalEntryLineItem, error)

	// FindOffsetHolderDates retrieves the dates (with entry no) of entries
	// holding offsets that reference any line item of the given entry,
	// ordered earliest first.
	FindOffsetHolderDates(ctx context.Context, entryID string) ([]time.Time, error)

	// FindOriginalLineItems retrieves unsettled-capable items on an account:
	// items on the given side with no original reference of their own,
	// ordered by (entry date, entry no, item no).
	FindOriginalLineItems(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error)

	// FindUnmatchedSettlements retrieves settlement-side items on an account
	// with original_line_item_id still NULL, ordered by
	// (entry date, entry no, side, item no).
	FindUnmatchedSettlements(ctx context.Context, accountID string, side domain.Side) ([]domain.PostedLineItem, error)

	// CountOffsetsReferencingEntry counts offsets held by other entries that
	// reference any line item of the given entry.
	CountOffsetsReferencingEntry(ctx context.Context, entryID string) (int, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveEntry applies one collected journal-entry edit atomically.
	SaveEntry(ctx context.Context, params SaveEntryParams) error

	// DeleteEntry removes an entry and its line items, applying the date
	// renumbering in the same transaction.
	DeleteEntry(ctx context.Context, entryID string, renumberOps []EntryNumberUpdate, updatedBy string, updatedAt time.Time) error

	// UpdateEntryNumbers rewrites per-date positions inside a
	// constraint-deferred transaction.
	UpdateEntryNumbers(ctx context.Context, updates []EntryNumberUpdate, updatedBy string, updatedAt time.Time) error

	// LinkOffsets sets original_line_item_id for each pair, never overwriting
	// an existing link. Returns the number of rows updated.
	LinkOffsets(ctx context.Context, links []domain.MatchPair, updatedBy string, updatedAt time.Time) (int, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	LineItemReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}

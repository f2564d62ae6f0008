package services

import (
	"context"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its line items.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries ordered by (date, no).
	ListEntries(ctx context.Context, from *time.Time, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// NetBalance computes the remaining open amount of an original line item,
	// excluding the given stored offset IDs and subtracting pending in-session
	// candidate amounts.
	NetBalance(ctx context.Context, originalLineItemID string, excludeOffsetIDs []string, pending []decimal.Decimal) (decimal.Decimal, error)
}

// JournalEntryWriterSvc defines mutating operations for journal entries
type JournalEntryWriterSvc interface {
	// CreateEntry collects the submitted groups into a new balanced entry,
	// positions it within its date, and persists atomically.
	CreateEntry(ctx context.Context, opCtx domain.OperationContext, req dto.SaveJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry reconciles the submitted groups against the entry's
	// persisted line items and persists the resulting edit atomically.
	UpdateEntry(ctx context.Context, opCtx domain.OperationContext, entryID string, req dto.SaveJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry and its line items. Rejected while any
	// other entry holds an offset against one of its items.
	DeleteEntry(ctx context.Context, opCtx domain.OperationContext, entryID string) error
}

// JournalEntrySvcFacade combines all journal entry service interfaces
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}

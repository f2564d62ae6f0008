package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persisted row shape for journal entries.
// The (entry_date, no) pair carries a deferrable unique constraint so
// renumbering can pass through transient duplicates inside one
// transaction.
type JournalEntry struct {
	EntryID   string    `db:"entry_id"`
	EntryDate time.Time `db:"entry_date"`
	No        int       `db:"no"`
	Note      *string   `db:"note"`
	AuditFields
}

// JournalEntryLineItem is the persisted row shape for line items.
// Side is stored as the is_debit boolean.
type JournalEntryLineItem struct {
	LineItemID         string          `db:"line_item_id"`
	EntryID            string          `db:"entry_id"`
	IsDebit            bool            `db:"is_debit"`
	No                 int             `db:"no"`
	CurrencyCode       string          `db:"currency_code"`
	AccountID          string          `db:"account_id"`
	Description        *string         `db:"description"`
	Amount             decimal.Decimal `db:"amount"`
	OriginalLineItemID *string         `db:"original_line_item_id"`
	AuditFields
}

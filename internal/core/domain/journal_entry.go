package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether a line item sits on the debit or credit side.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// EntryKind is the submission variant of a journal entry. Cash receipts
// and disbursements carry an implicit cash leg synthesized by the
// collector; transfers are fully explicit.
type EntryKind string

const (
	CashReceipt      EntryKind = "CASH_RECEIPT"
	CashDisbursement EntryKind = "CASH_DISBURSEMENT"
	Transfer         EntryKind = "TRANSFER"
)

// JournalEntry represents one dated, balanced bookkeeping event.
// No is its 1-based position within its calendar date; the engine keeps
// {no} dense (exactly 1..N per date).
type JournalEntry struct {
	EntryID   string    `json:"entryID"`   // Primary Key (e.g., UUID)
	EntryDate time.Time `json:"entryDate"` // calendar date (midnight UTC)
	No        int       `json:"no"`
	Note      *string   `json:"note"` // Nullable
	AuditFields
	// LineItems are loaded separately unless the caller asked for them.
	LineItems []JournalEntryLineItem `json:"lineItems,omitempty"`
}

// JournalEntryLineItem is a single debit or credit leg of a journal
// entry. OriginalLineItemID, when set, marks this item as an offset
// settling (part of) the referenced original receivable/payable item.
// The reference is non-owning and at most one level deep.
type JournalEntryLineItem struct {
	LineItemID         string          `json:"lineItemID"` // Primary Key (e.g., UUID)
	EntryID            string          `json:"entryID"`    // FK -> journal_entries
	Side               Side            `json:"side"`
	No                 int             `json:"no"` // 1-based position within its side
	CurrencyCode       string          `json:"currencyCode"`
	AccountID          string          `json:"accountID"`
	Description        *string         `json:"description"` // Nullable
	Amount             decimal.Decimal `json:"amount"`      // strictly positive
	OriginalLineItemID *string         `json:"originalLineItemID"` // Nullable self-FK
	AuditFields
}

// IsOffset reports whether this item settles an original item.
func (li JournalEntryLineItem) IsOffset() bool {
	return li.OriginalLineItemID != nil && *li.OriginalLineItemID != ""
}

// PostedLineItem is a line item joined with the date and position of
// the journal entry holding it, as needed for settlement ordering.
type PostedLineItem struct {
	JournalEntryLineItem
	EntryDate time.Time `json:"entryDate"`
	EntryNo   int       `json:"entryNo"`
}

// Before orders posted items by (entry date, entry no).
func (p PostedLineItem) Before(o PostedLineItem) bool {
	if !p.EntryDate.Equal(o.EntryDate) {
		return p.EntryDate.Before(o.EntryDate)
	}
	return p.EntryNo < o.EntryNo
}

// SameDescription compares descriptions treating NULL as equal only to NULL.
func SameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

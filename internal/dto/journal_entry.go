package dto

import (
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmittedLineItem is one debit or credit row of a submitted journal
// entry. LineItemID is empty for new rows; No is an optional explicit
// position hint.
type SubmittedLineItem struct {
	LineItemID         string          `json:"lineItemID"`
	No                 *int            `json:"no"`
	AccountCode        string          `json:"accountCode" binding:"required"`
	Description        *string         `json:"description"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	OriginalLineItemID *string         `json:"originalLineItemID"`
}

// CurrencyGroupRequest holds the submitted debit and credit rows of one currency.
type CurrencyGroupRequest struct {
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3,uppercase"`
	Debits       []SubmittedLineItem `json:"debits" binding:"omitempty,dive"`
	Credits      []SubmittedLineItem `json:"credits" binding:"omitempty,dive"`
}

// SaveJournalEntryRequest is the payload for creating or editing a journal entry.
type SaveJournalEntryRequest struct {
	Kind   domain.EntryKind       `json:"kind" binding:"required,oneof=CASH_RECEIPT CASH_DISBURSEMENT TRANSFER"`
	Date   time.Time              `json:"date" binding:"required"`
	Note   *string                `json:"note"`
	Groups []CurrencyGroupRequest `json:"groups" binding:"required,min=1,dive"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID         string          `json:"lineItemID"`
	Side               string          `json:"side"`
	No                 int             `json:"no"`
	CurrencyCode       string          `json:"currencyCode"`
	AccountID          string          `json:"accountID"`
	Description        *string         `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	OriginalLineItemID *string         `json:"originalLineItemID"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID   string             `json:"entryID"`
	Date      time.Time          `json:"date"`
	No        int                `json:"no"`
	Note      *string            `json:"note"`
	LineItems []LineItemResponse `json:"lineItems,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	CreatedBy string             `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of entries with its continuation token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// NetBalanceResponse is the remaining open amount of an original line item.
type NetBalanceResponse struct {
	LineItemID string          `json:"lineItemID"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// ToLineItemResponse converts a domain line item.
func ToLineItemResponse(li *domain.JournalEntryLineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:         li.LineItemID,
		Side:               string(li.Side),
		No:                 li.No,
		CurrencyCode:       li.CurrencyCode,
		AccountID:          li.AccountID,
		Description:        li.Description,
		Amount:             li.Amount,
		OriginalLineItemID: li.OriginalLineItemID,
	}
}

// ToJournalEntryResponse converts a domain journal entry with whatever
// line items it has loaded.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:   e.EntryID,
		Date:      e.EntryDate,
		No:        e.No,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
	if len(e.LineItems) > 0 {
		resp.LineItems = make([]LineItemResponse, len(e.LineItems))
		for i := range e.LineItems {
			resp.LineItems[i] = ToLineItemResponse(&e.LineItems[i])
		}
	}
	return resp
}

package dto

import (
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostedLineItemResponse is a line item with the date and position of
// the entry holding it, as shown on settlement screens.
type PostedLineItemResponse struct {
	LineItemResponse
	EntryID   string    `json:"entryID"`
	EntryDate time.Time `json:"entryDate"`
	EntryNo   int       `json:"entryNo"`
}

// MatchPairResponse is one computed settlement pairing.
type MatchPairResponse struct {
	OriginalLineItemID string          `json:"originalLineItemID"`
	OffsetLineItemID   string          `json:"offsetLineItemID"`
	Amount             decimal.Decimal `json:"amount"`
}

// MatchRunResponse is the outcome of one matcher pass.
type MatchRunResponse struct {
	AccountID      string              `json:"accountID"`
	Pairs          []MatchPairResponse `json:"pairs"`
	TotalUnapplied int                 `json:"totalUnapplied"`
}

// CommitMatchesResponse reports how many links were written.
type CommitMatchesResponse struct {
	Linked int `json:"linked"`
}

// ToPostedLineItemResponses converts posted line items.
func ToPostedLineItemResponses(items []domain.PostedLineItem) []PostedLineItemResponse {
	responses := make([]PostedLineItemResponse, len(items))
	for i, it := range items {
		responses[i] = PostedLineItemResponse{
			LineItemResponse: ToLineItemResponse(&items[i].JournalEntryLineItem),
			EntryID:          it.EntryID,
			EntryDate:        it.EntryDate,
			EntryNo:          it.EntryNo,
		}
	}
	return responses
}

// ToMatchRunResponse converts a domain match run.
func ToMatchRunResponse(run *domain.MatchRun) MatchRunResponse {
	pairs := make([]MatchPairResponse, len(run.Pairs))
	for i, p := range run.Pairs {
		pairs[i] = MatchPairResponse{
			OriginalLineItemID: p.OriginalLineItemID,
			OffsetLineItemID:   p.OffsetLineItemID,
			Amount:             p.Amount,
		}
	}
	return MatchRunResponse{
		AccountID:      run.AccountID,
		Pairs:          pairs,
		TotalUnapplied: run.TotalUnapplied,
	}
}

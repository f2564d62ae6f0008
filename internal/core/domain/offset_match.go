package domain

import "github.com/shopspring/decimal"

// MatchPair records one computed settlement pairing: the offset candidate
// whose amount exactly equals the original's remaining net balance.
type MatchPair struct {
	OriginalLineItemID string          `json:"originalLineItemID"`
	OffsetLineItemID   string          `json:"offsetLineItemID"`
	Amount             decimal.Decimal `json:"amount"`
}

// MatchRun is the result of one offset-matcher pass over an account.
// Computing a run never mutates storage; pairs become links only when
// the run is committed.
type MatchRun struct {
	AccountID      string      `json:"accountID"`
	Pairs          []MatchPair `json:"pairs"`
	TotalUnapplied int         `json:"totalUnapplied"`
}

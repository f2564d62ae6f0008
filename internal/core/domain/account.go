package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountType defines the fundamental accounting type of an account,
// derived from the leading digit of its base code.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountClass is the settlement classification of an account: whether
// its line items participate in receivable/payable offset tracking.
type AccountClass string

const (
	ClassNone      AccountClass = "NONE"
	ReceivableLike AccountClass = "RECEIVABLE_LIKE"
	PayableLike    AccountClass = "PAYABLE_LIKE"
)

// Account represents a bookkeeping account within the core domain.
// Its code is a 3-digit base code plus an optional sub-account sequence
// number, displayed as "152" or "152-2".
type Account struct {
	AccountID    string `json:"accountID"` // Primary Key (e.g., UUID)
	CodeBase     int    `json:"codeBase"`
	CodeSeq      int    `json:"codeSeq"` // 0 when the account has no sub-number
	Name         string `json:"name"`
	IsNeedOffset bool   `json:"isNeedOffset"` // receivable/payable tracking enabled
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Code renders the display form of the account code.
func (a Account) Code() string {
	if a.CodeSeq == 0 {
		return strconv.Itoa(a.CodeBase)
	}
	return fmt.Sprintf("%d-%d", a.CodeBase, a.CodeSeq)
}

// Type derives the accounting type from the leading digit of the base code.
func (a Account) Type() AccountType {
	switch a.CodeBase / 100 {
	case 1:
		return Asset
	case 2:
		return Liability
	case 3:
		return Equity
	case 4:
		return Revenue
	default:
		return Expense
	}
}

// Nature returns the side on which this account naturally increases.
// Asset and expense accounts are debit-natured; the rest credit-natured.
func (a Account) Nature() Side {
	switch a.Type() {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// ParseAccountCode splits a display code ("152" or "152-2") into its
// base and sequence parts.
func ParseAccountCode(code string) (base int, seq int, err error) {
	head, tail, found := strings.Cut(code, "-")
	base, err = strconv.Atoi(head)
	if err != nil || base < 100 || base > 999 {
		return 0, 0, fmt.Errorf("invalid account code %q", code)
	}
	if !found {
		return base, 0, nil
	}
	seq, err = strconv.Atoi(tail)
	if err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("invalid account code %q", code)
	}
	return base, seq, nil
}

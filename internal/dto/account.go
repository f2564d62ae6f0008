package dto

import (
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code         string `json:"code" binding:"required,accountcode"`
	Name         string `json:"name" binding:"required"`
	IsNeedOffset bool   `json:"isNeedOffset"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Class        string `json:"class"`
	IsNeedOffset bool   `json:"isNeedOffset"`
	IsActive     bool   `json:"isActive"`
}

// ListAccountsResponse wraps a page of accounts with its continuation token.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account, class domain.AccountClass) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Code:         a.Code(),
		Name:         a.Name,
		Type:         string(a.Type()),
		Class:        string(class),
		IsNeedOffset: a.IsNeedOffset,
		IsActive:     a.IsActive,
	}
}

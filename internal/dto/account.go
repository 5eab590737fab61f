package dto

import (
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	AccountNumber      string             `json:"accountNumber" binding:"required"`
	Name               string             `json:"name" binding:"required"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description        string             `json:"description"`
	EnforceNonNegative bool               `json:"enforceNonNegative"`
}

// UpdateAccountRequest updates an account's mutable details. The account
// number is not updatable once any entry references the account.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	AccountNumber      string             `json:"accountNumber"`
	Name               string             `json:"name"`
	AccountType        domain.AccountType `json:"accountType"`
	Description        string             `json:"description,omitempty"`
	EnforceNonNegative bool               `json:"enforceNonNegative"`
	IsActive           bool               `json:"isActive"`
}

// AccountBalanceResponse carries a history-derived account balance.
type AccountBalanceResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		AccountNumber:      a.AccountNumber,
		Name:               a.Name,
		AccountType:        a.AccountType,
		Description:        a.Description,
		EnforceNonNegative: a.EnforceNonNegative,
		IsActive:           a.IsActive,
	}
}

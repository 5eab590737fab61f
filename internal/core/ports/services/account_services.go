package services

import (
	"context"
	"time"

	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/kudipay/payledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines operations on the chart of accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// GetAccountBalance computes the running balance from posted entry history
	// as of the given time.
	GetAccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

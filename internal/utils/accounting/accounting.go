package accounting

import (
	"fmt"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the fixed precision of all ledger amounts.
const CurrencyPlaces = 2

// Quantize rounds an amount to 2 fractional digits using round-half-up.
// All amounts entering the ledger pass through this before any comparison.
func Quantize(d decimal.Decimal) decimal.Decimal {
	// decimal.Round is half-away-from-zero, which is half-up for the
	// non-negative amounts the ledger deals in.
	return d.Round(CurrencyPlaces)
}

// SignedAmount applies the accounting sign convention to an entry amount:
//
//	DEBIT  to ASSET/EXPENSE            -> positive
//	CREDIT to ASSET/EXPENSE            -> negative
//	DEBIT  to LIABILITY/EQUITY/REVENUE -> negative
//	CREDIT to LIABILITY/EQUITY/REVENUE -> positive
//
// The result is the entry's effect on the account's running balance.
func SignedAmount(entryType domain.EntryType, amount decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	isDebit := entryType == domain.Debit
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// SumSides returns the total debit and credit amounts of a set of entry specs.
func SumSides(specs []domain.EntrySpec) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, s := range specs {
		if s.EntryType == domain.Debit {
			debits = debits.Add(s.Amount)
		} else {
			credits = credits.Add(s.Amount)
		}
	}
	return debits, credits
}

// ValidateBalance checks the double-entry invariant over quantized entry specs:
// every amount strictly positive and total debits equal to total credits.
func ValidateBalance(specs []domain.EntrySpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: journal requires at least one entry", apperrors.ErrValidation)
	}
	for _, s := range specs {
		if s.EntryType != domain.Debit && s.EntryType != domain.Credit {
			return fmt.Errorf("%w: invalid entry type %q", apperrors.ErrValidation, s.EntryType)
		}
		if s.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive for account %s, got %s",
				apperrors.ErrValidation, s.AccountNumber, s.Amount.String())
		}
	}
	debits, credits := SumSides(specs)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalancedJournal, debits.StringFixed(CurrencyPlaces), credits.StringFixed(CurrencyPlaces))
	}
	return nil
}

// PerPeriod scales an annual statutory amount down to a single pay period,
// quantized to currency precision.
func PerPeriod(annual decimal.Decimal, periodsPerYear int64) decimal.Decimal {
	if periodsPerYear <= 0 {
		periodsPerYear = 1
	}
	return Quantize(annual.Div(decimal.NewFromInt(periodsPerYear)))
}

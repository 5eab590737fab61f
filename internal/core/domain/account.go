package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry in the chart of accounts.
// AccountNumber is the stable external identifier; it never changes once any
// journal entry references the account.
type Account struct {
	AccountID     string      `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string      `json:"accountNumber"` // Unique, user-facing (e.g. "5000")
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	Description   string      `json:"description"`
	// EnforceNonNegative subjects the account to the balance guard on posting.
	// Asset accounts are guarded regardless of this flag.
	EnforceNonNegative bool `json:"enforceNonNegative"`
	IsActive           bool `json:"isActive"`
	AuditFields
}

// IsBalanceConstrained reports whether postings against this account must not
// drive its running balance negative.
func (a Account) IsBalanceConstrained() bool {
	return a.AccountType == Asset || a.EnforceNonNegative
}

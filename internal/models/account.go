package models

// Account is the storage representation of a chart-of-accounts row.
type Account struct {
	AccountID          string `db:"account_id"`
	AccountNumber      string `db:"account_number"`
	Name               string `db:"name"`
	AccountType        string `db:"account_type"`
	Description        string `db:"description"`
	EnforceNonNegative bool   `db:"enforce_non_negative"`
	IsActive           bool   `db:"is_active"`
	AuditFields
}

package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PostingAccountNumbers names the ledger accounts payroll postings target.
// These are account numbers in the chart of accounts, not internal IDs.
type PostingAccountNumbers struct {
	SalaryExpense    string
	CashBank         string
	PAYEPayable      string
	PensionPayable   string
	NHFPayable       string
	HealthPayable    string
	OtherDeductions  string
	EmployeeAdvances string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string

	// Redis backs the notification queue. Empty RedisAddr disables it.
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	WorkerConcurrency int

	PostingAccounts PostingAccountNumbers
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("WORKER_CONCURRENCY", 5)
	viper.SetDefault("ACCT_SALARY_EXPENSE", "6000")
	viper.SetDefault("ACCT_CASH_BANK", "1000")
	viper.SetDefault("ACCT_PAYE_PAYABLE", "2100")
	viper.SetDefault("ACCT_PENSION_PAYABLE", "2200")
	viper.SetDefault("ACCT_NHF_PAYABLE", "2300")
	viper.SetDefault("ACCT_HEALTH_PAYABLE", "2400")
	viper.SetDefault("ACCT_OTHER_DEDUCTIONS", "2500")
	viper.SetDefault("ACCT_EMPLOYEE_ADVANCES", "1200")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Posting notifications are disabled.")
	}

	cfg.PostingAccounts = PostingAccountNumbers{
		SalaryExpense:    viper.GetString("ACCT_SALARY_EXPENSE"),
		CashBank:         viper.GetString("ACCT_CASH_BANK"),
		PAYEPayable:      viper.GetString("ACCT_PAYE_PAYABLE"),
		PensionPayable:   viper.GetString("ACCT_PENSION_PAYABLE"),
		NHFPayable:       viper.GetString("ACCT_NHF_PAYABLE"),
		HealthPayable:    viper.GetString("ACCT_HEALTH_PAYABLE"),
		OtherDeductions:  viper.GetString("ACCT_OTHER_DEDUCTIONS"),
		EmployeeAdvances: viper.GetString("ACCT_EMPLOYEE_ADVANCES"),
	}

	return cfg, nil
}

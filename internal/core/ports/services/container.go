package services

// ServiceContainer aggregates the service facades for dependency injection
// into the HTTP handlers.
type ServiceContainer struct {
	Account AccountSvcFacade
	Journal JournalSvcFacade
	Payroll PayrollSvcFacade
}

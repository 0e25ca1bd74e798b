package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	User      UserSvcFacade
	Account   AccountSvcFacade
	Category  CategorySvcFacade
	Sharing   SharingSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
}

package services

import (
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Sharing goes first since account and ledger authorization depend on it
	container.Sharing = NewSharingService(repos.ShareLinkRepo, repos.AccountRepo, repos.UserRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo, container.Sharing)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.CategoryRepo, container.Sharing)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

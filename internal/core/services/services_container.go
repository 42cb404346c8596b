package services

import (
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ProductServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Product = NewProductService(
		repos.ProductRepo,
		repos.PriceRepo,
		repos.TxManager,
		options...,
	)

	return container
}

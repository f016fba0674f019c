package bootstrap

import (
	executionInfra "github.com/tradewire/bookfeed/internal/infrastructure/postgres/execution"
	orderInfra "github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
)

// Repository holds the store adapters.
type Repository struct {
	OrderRepository     orderInfra.OrderRepository
	ExecutionRepository executionInfra.ExecutionRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.OrderRepository = orderInfra.NewRepository(b.Postgres)
	b.Repository.ExecutionRepository = executionInfra.NewRepository(b.Postgres)
}

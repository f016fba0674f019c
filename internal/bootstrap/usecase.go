package bootstrap

import (
	averageUc "github.com/tradewire/bookfeed/internal/usecase/average"
	bookUc "github.com/tradewire/bookfeed/internal/usecase/book"

	averageDomain "github.com/tradewire/bookfeed/internal/domain/average"
	bookDomain "github.com/tradewire/bookfeed/internal/domain/book"
)

// Usecase holds the domain usecases.
type Usecase struct {
	BookUsecase    bookDomain.Usecase
	AverageUsecase averageDomain.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.BookUsecase = bookUc.NewUsecase(b.Repository.OrderRepository, b.Logger)
	b.Usecase.AverageUsecase = averageUc.NewUsecase(b.Repository.ExecutionRepository, b.Logger)
}

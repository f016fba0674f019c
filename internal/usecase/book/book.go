package book

import (
	"context"

	domain "github.com/tradewire/bookfeed/internal/domain/book"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/errors"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// Usecase builds order book snapshots and reconciles client-held entries
// against the store.
type Usecase struct {
	orderRepository order.OrderRepository
	logger          logger.Interface
}

// NewUsecase creates a new book usecase.
func NewUsecase(orderRepository order.OrderRepository, logger logger.Interface) *Usecase {
	return &Usecase{orderRepository: orderRepository, logger: logger}
}

// BuildSnapshot returns the full aggregated book for a symbol.
func (u *Usecase) BuildSnapshot(ctx context.Context, symbol string) (*order.OrderBook, error) {
	book, err := u.orderRepository.OpenOrderBook(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return book, nil
}

// Reconcile validates the ask and/or bid candidate against store state.
// Each side is resolved independently; a nil candidate yields a nil
// instruction for that side.
func (u *Usecase) Reconcile(ctx context.Context, ask, bid *domain.Candidate) (*domain.Correction, error) {
	correction := &domain.Correction{}

	askInstruction, err := u.reconcileCandidate(ctx, ask)
	if err != nil {
		return nil, err
	}
	correction.Ask = askInstruction

	bidInstruction, err := u.reconcileCandidate(ctx, bid)
	if err != nil {
		return nil, err
	}
	correction.Bid = bidInstruction

	return correction, nil
}

func (u *Usecase) reconcileCandidate(ctx context.Context, candidate *domain.Candidate) (*domain.Instruction, error) {
	if candidate == nil {
		return nil, nil
	}

	stored, err := u.orderRepository.GetBySecnum(ctx, candidate.Secnum)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	// An order the store never heard of, or one fully consumed, is gone
	// from the client's perspective.
	if stored == nil || stored.QuantityLeft == 0 {
		return &domain.Instruction{
			Action: domain.ActionDelete,
			Secnum: candidate.Secnum,
		}, nil
	}

	if stored.QuantityLeft == candidate.Quantity && stored.Price.Equal(candidate.Price) {
		return nil, nil
	}

	return &domain.Instruction{
		Action:   domain.ActionUpdate,
		Secnum:   candidate.Secnum,
		Price:    stored.Price,
		Quantity: stored.QuantityLeft,
	}, nil
}

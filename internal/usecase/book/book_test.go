package book

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	domain "github.com/tradewire/bookfeed/internal/domain/book"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	orderMock "github.com/tradewire/bookfeed/internal/infrastructure/postgres/order/mock"
	loggerMock "github.com/tradewire/bookfeed/pkg/logger/mock"
	"go.uber.org/mock/gomock"
)

func TestUsecase_BuildSnapshot(t *testing.T) {
	testCases := []struct {
		name       string
		mockFn     func(t *testing.T, symbol string, repo *orderMock.MockOrderRepository)
		assertFn   func(t *testing.T, book *order.OrderBook, err error)
		testParams string
	}{
		{
			name: "success",
			mockFn: func(t *testing.T, symbol string, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					OpenOrderBook(gomock.Any(), symbol).
					Return(&order.OrderBook{
						Symbol: "AAPL",
						Asks: []order.PriceLevel{
							{Symbol: "AAPL", Side: order.SideAsk, Price: decimal.NewFromFloat(101.5), Quantity: 200, Secnum: 7},
						},
						Bids: []order.PriceLevel{
							{Symbol: "AAPL", Side: order.SideBid, Price: decimal.NewFromFloat(101.0), Quantity: 150, Secnum: 3},
						},
					}, nil)
			},
			assertFn: func(t *testing.T, book *order.OrderBook, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "AAPL", book.Symbol)
				assert.Equal(t, 1, len(book.Asks))
				assert.Equal(t, 1, len(book.Bids))
				assert.Equal(t, uint64(200), book.Asks[0].Quantity)
			},
			testParams: "AAPL",
		},
		{
			name: "repository error",
			mockFn: func(t *testing.T, symbol string, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					OpenOrderBook(gomock.Any(), symbol).
					Return(nil, errors.New("connection refused"))
			},
			assertFn: func(t *testing.T, book *order.OrderBook, err error) {
				assert.Error(t, err)
				assert.Nil(t, book)
			},
			testParams: "AAPL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := orderMock.NewMockOrderRepository(ctrl)
			mockLogger := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(t, tc.testParams, repo)

			uc := NewUsecase(repo, mockLogger)
			book, err := uc.BuildSnapshot(context.Background(), tc.testParams)
			tc.assertFn(t, book, err)
		})
	}
}

func TestUsecase_Reconcile(t *testing.T) {
	type params struct {
		ask *domain.Candidate
		bid *domain.Candidate
	}

	testCases := []struct {
		name       string
		mockFn     func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository)
		assertFn   func(t *testing.T, correction *domain.Correction, err error)
		testParams params
	}{
		{
			name:   "both candidates nil",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.Nil(t, correction.Ask)
				assert.Nil(t, correction.Bid)
			},
			testParams: params{},
		},
		{
			name: "order missing yields delete",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(42)).
					Return(nil, nil)
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, correction.Ask)
				assert.Equal(t, domain.ActionDelete, correction.Ask.Action)
				assert.Equal(t, uint64(42), correction.Ask.Secnum)
				assert.Nil(t, correction.Bid)
			},
			testParams: params{
				ask: &domain.Candidate{Secnum: 42, Price: decimal.NewFromInt(100), Quantity: 10},
			},
		},
		{
			name: "fully consumed order yields delete",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(42)).
					Return(&order.Order{
						Secnum:       42,
						Symbol:       "AAPL",
						Side:         order.SideAsk,
						Price:        decimal.NewFromInt(100),
						Quantity:     10,
						QuantityLeft: 0,
					}, nil)
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, correction.Ask)
				assert.Equal(t, domain.ActionDelete, correction.Ask.Action)
			},
			testParams: params{
				ask: &domain.Candidate{Secnum: 42, Price: decimal.NewFromInt(100), Quantity: 10},
			},
		},
		{
			name: "matching candidate yields no instruction",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(42)).
					Return(&order.Order{
						Secnum:       42,
						Symbol:       "AAPL",
						Side:         order.SideBid,
						Price:        decimal.NewFromInt(100),
						Quantity:     10,
						QuantityLeft: 10,
					}, nil)
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.Nil(t, correction.Ask)
				assert.Nil(t, correction.Bid)
			},
			testParams: params{
				bid: &domain.Candidate{Secnum: 42, Price: decimal.NewFromInt(100), Quantity: 10},
			},
		},
		{
			name: "drifted quantity yields update",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(42)).
					Return(&order.Order{
						Secnum:       42,
						Symbol:       "AAPL",
						Side:         order.SideBid,
						Price:        decimal.NewFromInt(100),
						Quantity:     10,
						QuantityLeft: 4,
					}, nil)
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, correction.Bid)
				assert.Equal(t, domain.ActionUpdate, correction.Bid.Action)
				assert.Equal(t, uint64(42), correction.Bid.Secnum)
				assert.True(t, correction.Bid.Price.Equal(decimal.NewFromInt(100)))
				assert.Equal(t, uint64(4), correction.Bid.Quantity)
			},
			testParams: params{
				bid: &domain.Candidate{Secnum: 42, Price: decimal.NewFromInt(100), Quantity: 10},
			},
		},
		{
			name: "both sides reconciled independently",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(1)).
					Return(nil, nil)
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(2)).
					Return(&order.Order{
						Secnum:       2,
						Symbol:       "AAPL",
						Side:         order.SideBid,
						Price:        decimal.NewFromInt(99),
						Quantity:     20,
						QuantityLeft: 20,
					}, nil)
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, correction.Ask)
				assert.Equal(t, domain.ActionDelete, correction.Ask.Action)
				assert.Nil(t, correction.Bid)
			},
			testParams: params{
				ask: &domain.Candidate{Secnum: 1, Price: decimal.NewFromInt(101), Quantity: 5},
				bid: &domain.Candidate{Secnum: 2, Price: decimal.NewFromInt(99), Quantity: 20},
			},
		},
		{
			name: "repository error propagates",
			mockFn: func(t *testing.T, testParams params, repo *orderMock.MockOrderRepository) {
				repo.EXPECT().
					GetBySecnum(gomock.Any(), uint64(42)).
					Return(nil, errors.New("query timeout"))
			},
			assertFn: func(t *testing.T, correction *domain.Correction, err error) {
				assert.Error(t, err)
				assert.Nil(t, correction)
			},
			testParams: params{
				ask: &domain.Candidate{Secnum: 42, Price: decimal.NewFromInt(100), Quantity: 10},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := orderMock.NewMockOrderRepository(ctrl)
			mockLogger := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(t, tc.testParams, repo)

			uc := NewUsecase(repo, mockLogger)
			correction, err := uc.Reconcile(context.Background(), tc.testParams.ask, tc.testParams.bid)
			tc.assertFn(t, correction, err)
		})
	}
}

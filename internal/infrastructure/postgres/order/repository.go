package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tradewire/bookfeed/pkg/postgresql"
)

// Repository is the PostgreSQL-backed order store adapter.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// OpenOrderBook returns the aggregated book for a symbol. Bids are ordered
// descending by price, asks ascending.
func (r *Repository) OpenOrderBook(ctx context.Context, symbol string) (*OrderBook, error) {
	bids, err := r.sideLevels(ctx, symbol, SideBid, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query bid levels: %w", err)
	}

	asks, err := r.sideLevels(ctx, symbol, SideAsk, false)
	if err != nil {
		return nil, fmt.Errorf("failed to query ask levels: %w", err)
	}

	return &OrderBook{
		Symbol: symbol,
		Asks:   asks,
		Bids:   bids,
	}, nil
}

func (r *Repository) sideLevels(ctx context.Context, symbol string, side Side, desc bool) ([]PriceLevel, error) {
	query, args := postgresql.NewQueryBuilder().
		Select("symbol", "side", "price", "SUM(quantity_left) AS quantity", "MIN(secnum) AS secnum").
		From("orders").
		Where("symbol = ?", symbol).
		Where("side = ?", string(side)).
		Where("quantity_left > 0").
		GroupBy("symbol", "side", "price").
		OrderBy("price", desc).
		Build()

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := []PriceLevel{}
	for rows.Next() {
		var level PriceLevel
		if err := rows.Scan(&level.Symbol, &level.Side, &level.Price, &level.Quantity, &level.Secnum); err != nil {
			return nil, fmt.Errorf("failed to scan price level: %w", err)
		}
		levels = append(levels, level)
	}

	return levels, rows.Err()
}

// GetBySecnum returns one order by its secnum, nil if absent.
func (r *Repository) GetBySecnum(ctx context.Context, secnum uint64) (*Order, error) {
	query := `SELECT secnum, symbol, side, price, quantity, quantity_left
			  FROM orders WHERE secnum = $1`

	order := &Order{}
	err := r.client.QueryRow(ctx, query, secnum).Scan(
		&order.Secnum, &order.Symbol, &order.Side, &order.Price,
		&order.Quantity, &order.QuantityLeft)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", secnum, err)
	}

	return order, nil
}

// PriceLevelAt returns the aggregate open quantity at one (symbol, side,
// price). COALESCE yields quantity 0 when no open orders remain, which is
// exactly the eviction signal the updates delta needs.
func (r *Repository) PriceLevelAt(ctx context.Context, symbol string, side Side, price decimal.Decimal) (*PriceLevel, error) {
	query := `SELECT COALESCE(SUM(quantity_left), 0), COALESCE(MIN(secnum), 0)
			  FROM orders
			  WHERE symbol = $1 AND side = $2 AND price = $3 AND quantity_left > 0`

	level := &PriceLevel{
		Symbol: symbol,
		Side:   side,
		Price:  price,
	}
	err := r.client.QueryRow(ctx, query, symbol, string(side), price).Scan(&level.Quantity, &level.Secnum)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate level %s/%s@%s: %w", symbol, side, price, err)
	}

	return level, nil
}

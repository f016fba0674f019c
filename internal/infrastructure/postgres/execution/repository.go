package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/tradewire/bookfeed/pkg/postgresql"
)

// Repository is the PostgreSQL-backed execution store adapter.
type Repository struct {
	client postgresql.PostgreSQLClient
}

// NewRepository creates a new repository.
func NewRepository(client postgresql.PostgreSQLClient) *Repository {
	return &Repository{
		client: client,
	}
}

// VolumeWeightedAverages computes the per-symbol, per-side VWAP over
// executions recorded in [from, to).
func (r *Repository) VolumeWeightedAverages(ctx context.Context, from, to time.Time) ([]*SideAverage, error) {
	query := `SELECT symbol, side, SUM(price * quantity) / SUM(quantity) AS avg_price
			  FROM executions
			  WHERE executed_at >= $1 AND executed_at < $2
			  GROUP BY symbol, side
			  ORDER BY symbol, side`

	rows, err := r.client.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query volume weighted averages: %w", err)
	}
	defer rows.Close()

	var averages []*SideAverage
	for rows.Next() {
		avg := &SideAverage{}
		if err := rows.Scan(&avg.Symbol, &avg.Side, &avg.AvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan side average: %w", err)
		}
		averages = append(averages, avg)
	}

	return averages, rows.Err()
}

package execution

import (
	"context"
	"time"
)

// ExecutionRepository is the read-only store adapter over recorded
// executions.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type ExecutionRepository interface {
	// VolumeWeightedAverages returns Σ(price·quantity)/Σ(quantity) per
	// symbol and side over executions recorded in [from, to).
	VolumeWeightedAverages(ctx context.Context, from, to time.Time) ([]*SideAverage, error)
}

package postgresql

import (
	"context"
	"time"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	ActiveConns  int32         `json:"active_connections"`
	IdleConns    int32         `json:"idle_connections"`
	MaxConns     int32         `json:"max_connections"`
	DatabaseName string        `json:"database_name"`
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Error        string        `json:"error,omitempty"`
}

// CheckHealth performs a health check on the PostgreSQL connection
func (c *Client) CheckHealth(ctx context.Context) *HealthCheck {
	start := time.Now()

	health := &HealthCheck{
		DatabaseName: c.DatabaseName(),
		Host:         c.Host(),
		Port:         c.Port(),
	}

	stats := c.Stats()
	health.ActiveConns = stats.AcquiredConns()
	health.IdleConns = stats.IdleConns()
	health.MaxConns = stats.MaxConns()

	if err := c.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		health.ResponseTime = time.Since(start)
		return health
	}

	health.Status = "healthy"
	health.ResponseTime = time.Since(start)
	return health
}

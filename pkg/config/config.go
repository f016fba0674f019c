package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tradewire/bookfeed/pkg/postgresql"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	Postgres   postgresql.Config `envPrefix:"POSTGRES_"`
	WS         WSConfig          `envPrefix:"WS_"`
	OrderKafka OrderKafkaConfig  `envPrefix:"ORDER_KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string   `env:"NAME" envDefault:"bookfeed"`
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	Port        int      `env:"PORT" envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	Symbols     []string `env:"SYMBOLS" envSeparator:"," envDefault:"AAPL,MSFT,GOOG,AMZN"`

	// Per-symbol sequencing queue depth. Submit blocks once a symbol's
	// queue is full.
	QueueSize int `env:"QUEUE_SIZE" envDefault:"1024"`
}

// WSConfig represents the WebSocket hub configuration.
type WSConfig struct {
	ReadBufferSize  int           `env:"READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int           `env:"WRITE_BUFFER_SIZE" envDefault:"1024"`
	SendBufferSize  int           `env:"SEND_BUFFER_SIZE" envDefault:"256"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	PongTimeout     time.Duration `env:"PONG_TIMEOUT" envDefault:"60s"`
	PingInterval    time.Duration `env:"PING_INTERVAL" envDefault:"54s"`
}

// OrderKafkaConfig represents the Kafka ingestion configuration.
type OrderKafkaConfig struct {
	Enabled       bool     `env:"ENABLED" envDefault:"false"`
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"order-events"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"bookfeed"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SupportedSymbols returns the configured symbol set as a lookup map.
func (c *Config) SupportedSymbols() map[string]struct{} {
	set := make(map[string]struct{}, len(c.App.Symbols))
	for _, s := range c.App.Symbols {
		set[s] = struct{}{}
	}
	return set
}

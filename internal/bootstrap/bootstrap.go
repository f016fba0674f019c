package bootstrap

import (
	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/logger"
	"github.com/tradewire/bookfeed/pkg/postgresql"
	"github.com/tradewire/bookfeed/pkg/util"
)

// Bootstrap wires the service graph.
type Bootstrap struct {
	Repository Repository
	Usecase    Usecase
	Service    Service

	Config   *config.Config
	Logger   logger.Interface
	Postgres postgresql.PostgreSQLClient
	Clock    util.Clock
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config   *config.Config
	Logger   logger.Interface
	Postgres postgresql.PostgreSQLClient
	Clock    util.Clock
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.Config = config.Config
	b.Logger = config.Logger
	b.Postgres = config.Postgres
	b.Clock = config.Clock
	if b.Clock == nil {
		b.Clock = util.RealClock{}
	}

	b.registerRepository()
	b.registerUsecase()
	b.registerService()

	return *b
}

package repositories

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/dig"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gerritforge/internal/domain/repositories"
	gerritRepo "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories/gerrit"
	gitRepo "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories/git"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(clockwork.NewRealClock); err != nil {
		return err
	}

	// Register strategy registry with both sync strategies
	if err := container.Provide(func() *StrategyRegistry {
		reg := NewStrategyRegistry()
		reg.Register(entities.StrategyPush, engine.NewPushStrategy)
		reg.Register(entities.StrategyCherryPick, engine.NewCherryPickStrategy)
		return reg
	}); err != nil {
		return err
	}

	// Register the factory wiring the HTTP client and go-git working copies
	if err := container.Provide(func(strategies *StrategyRegistry, clock clockwork.Clock) *PlatformFactory {
		return NewPlatformFactory(
			strategies,
			func(settings *entities.Settings) domainRepos.GerritRepository {
				return gerritRepo.NewClient(settings)
			},
			func(settings *entities.Settings, clock clockwork.Clock) domainRepos.VCSRepository {
				return gitRepo.NewRepository(settings, clock)
			},
			clock,
		)
	}); err != nil {
		return err
	}

	return nil
}

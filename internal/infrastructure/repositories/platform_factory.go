package repositories

import (
	"github.com/jonboulle/clockwork"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// GerritFactory builds the REST client for the configured server.
type GerritFactory func(settings *entities.Settings) domainRepos.GerritRepository

// VCSFactory builds the working copy layer.
type VCSFactory func(settings *entities.Settings, clock clockwork.Clock) domainRepos.VCSRepository

// PlatformFactory assembles an engine.Platform from the runtime settings.
type PlatformFactory struct {
	strategies *StrategyRegistry
	newGerrit  GerritFactory
	newVCS     VCSFactory
	clock      clockwork.Clock
}

// NewPlatformFactory creates a PlatformFactory.
func NewPlatformFactory(
	strategies *StrategyRegistry,
	newGerrit GerritFactory,
	newVCS VCSFactory,
	clock clockwork.Clock,
) *PlatformFactory {
	return &PlatformFactory{
		strategies: strategies,
		newGerrit:  newGerrit,
		newVCS:     newVCS,
		clock:      clock,
	}
}

// Create returns a Platform using the strategy named in settings.
func (f *PlatformFactory) Create(settings *entities.Settings) (*engine.Platform, error) {
	newStrategy, err := f.strategies.Get(settings.Strategy)
	if err != nil {
		return nil, err
	}
	return engine.NewPlatform(
		f.newGerrit(settings),
		f.newVCS(settings, f.clock),
		f.clock,
		newStrategy,
		engine.PlatformOptions{
			LocalDir:         settings.LocalDir,
			MinServerVersion: settings.MinServerVersion,
		},
	), nil
}

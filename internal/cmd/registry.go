package cmd

import (
	"fmt"

	"github.com/runger/bistro/internal/config"
	"github.com/runger/bistro/internal/strategy"
)

// buildRegistry constructs the strategy registry from configuration:
// builtin strategies plus any custom weight vectors defined under the
// "strategies" config section.
func buildRegistry(cfg *config.Config) (*strategy.Registry, error) {
	reg := strategy.NewRegistryWithVoteCap(cfg.Engine.VoteCap)
	for name, weights := range cfg.Strategies {
		if err := reg.Register(name, weights); err != nil {
			return nil, fmt.Errorf("config strategy %q: %w", name, err)
		}
	}
	return reg, nil
}

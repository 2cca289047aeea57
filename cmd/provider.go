// File: cmd/provider.go
package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/blockmap"
	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/host"
	"github.com/xkilldash9x/paramctl/internal/host/sim"
	"github.com/xkilldash9x/paramctl/internal/paramset"
	"github.com/xkilldash9x/paramctl/internal/store"
)

// hostProvider creates the host the commands talk to. Tests inject their own
// provider to inspect the host after a command ran.
type hostProvider interface {
	// Create returns a host addressed through tpl, a cleanup function that
	// releases its resources, and an error if the host could not be prepared.
	Create(ctx context.Context, cfg config.Interface, tpl paramset.Template, logger *zap.Logger) (host.Host, func(), error)
}

// simHostProvider builds the simulated TX2-40 controller, optionally backed by
// a SQLite state file.
type simHostProvider struct{}

// NewHostProvider returns the production host provider.
func NewHostProvider() hostProvider {
	return &simHostProvider{}
}

func (p *simHostProvider) Create(ctx context.Context, cfg config.Interface, tpl paramset.Template, logger *zap.Logger) (host.Host, func(), error) {
	opts := []sim.Option{
		sim.WithOpen(cfg.Sim().Open),
		sim.WithLogger(logger),
	}
	cleanup := func() {}

	if statePath := cfg.Sim().State; statePath != "" {
		st, err := store.Open(ctx, statePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open simulator state: %w", err)
		}
		opts = append(opts, sim.WithPersister(st))
		cleanup = func() {
			if err := st.Close(); err != nil {
				logger.Warn("Failed to close simulator state cleanly.", zap.Error(err))
			}
		}
	}

	model := sim.NewTX2Model(tpl, opts...)
	if err := model.Restore(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return model, cleanup, nil
}

// resolveTemplate derives the controller path template from the configuration.
// A configured block name is looked up in the exported block map.
func resolveTemplate(cfg config.ControllerConfig) (paramset.Template, error) {
	if cfg.Block == "" {
		return paramset.NewTemplate(cfg.Path), nil
	}
	m, err := blockmap.LoadFile(cfg.BlockMap)
	if err != nil {
		return paramset.Template{}, err
	}
	path, err := m.Lookup(cfg.Block)
	if err != nil {
		return paramset.Template{}, fmt.Errorf("failed to resolve controller block: %w", err)
	}
	return paramset.NewTemplate(path), nil
}

// loadTable returns the table stored at path, or the built-in table when path
// is empty.
func loadTable(path string) (paramset.Table, error) {
	if path == "" {
		return paramset.Default(), nil
	}
	return paramset.LoadTableFile(path)
}

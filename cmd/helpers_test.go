// File: cmd/helpers_test.go
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/host"
	"github.com/xkilldash9x/paramctl/internal/host/sim"
	"github.com/xkilldash9x/paramctl/internal/observability"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	homedir.DisableCache = true
	os.Exit(m.Run())
}

// newTestConfig creates a default configuration with a quiet logger.
func newTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LoggerCfg.Level = "fatal"
	return cfg
}

// isolateEnv points HOME at an empty directory and moves into another one, so
// no config or .env file from the developer's machine is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	t.Chdir(wd)
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)
	return wd
}

// writeFile writes content below dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// modelProvider hands out one simulated model so tests can inspect it after
// a command ran.
type modelProvider struct {
	model    *sim.Model
	tpl      paramset.Template
	creates  int
	cleanups int
	err      error
}

func (p *modelProvider) Create(_ context.Context, cfg config.Interface, tpl paramset.Template, logger *zap.Logger) (host.Host, func(), error) {
	p.creates++
	if p.err != nil {
		return nil, nil, p.err
	}
	if p.model == nil {
		p.model = sim.NewTX2Model(tpl, sim.WithOpen(cfg.Sim().Open), sim.WithLogger(logger))
	}
	p.tpl = tpl
	return p.model, func() { p.cleanups++ }, nil
}

func countLevel(msgs []sim.Message, level sim.Level) int {
	n := 0
	for _, m := range msgs {
		if m.Level == level {
			n++
		}
	}
	return n
}

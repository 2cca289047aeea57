// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/paramctl/internal/blockmap"
	"github.com/xkilldash9x/paramctl/internal/compare"
	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/host/sim"
	"github.com/xkilldash9x/paramctl/internal/mocks"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

const blockExport = `//Model uuids
a = [Block Diagram].[Cell].[RobotController] ;
//Port uuids
`

func TestRunApply_DefaultTable(t *testing.T) {
	provider := &modelProvider{}
	cfg := newTestConfig()

	err := runApply(context.Background(), zaptest.NewLogger(t), cfg, provider)
	require.NoError(t, err)

	msgs := provider.model.Messages()
	require.Len(t, msgs, paramset.Default().Len())
	assert.Equal(t, len(msgs), countLevel(msgs, sim.LevelInfo))
	assert.Equal(t, 1, provider.cleanups)
	for _, m := range msgs {
		assert.False(t, m.Flag)
	}
}

func TestRunApply_FailuresDoNotFailCommand(t *testing.T) {
	dir := t.TempDir()
	table := writeFile(t, dir, "table.yaml", "par_12: 1\npar_6: 320\nAxis_1.v_max: 9999\n")
	cfg := newTestConfig()
	cfg.SetApplyTable(table)
	cfg.ApplyCfg.MessageFlag = true
	provider := &modelProvider{}

	require.NoError(t, runApply(context.Background(), zaptest.NewLogger(t), cfg, provider))

	msgs := provider.model.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, sim.LevelError, msgs[0].Level)
	assert.Contains(t, msgs[0].Text, "parameter not found")
	assert.Equal(t, sim.LevelInfo, msgs[1].Level)
	assert.Equal(t, sim.LevelError, msgs[2].Level)
	assert.Contains(t, msgs[2].Text, "out of range")
	assert.True(t, msgs[0].Flag)
}

func TestRunApply_OpenModelAcceptsUnknownParameters(t *testing.T) {
	dir := t.TempDir()
	cfg := newTestConfig()
	cfg.SetApplyTable(writeFile(t, dir, "table.yaml", "par_12: 1\n"))
	cfg.SetSimOpen(true)
	provider := &modelProvider{}

	require.NoError(t, runApply(context.Background(), zaptest.NewLogger(t), cfg, provider))
	msgs := provider.model.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, sim.LevelInfo, msgs[0].Level)
}

func TestRunApply_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing table", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SetApplyTable(filepath.Join(dir, "missing.yaml"))
		provider := &modelProvider{}
		err := runApply(context.Background(), zaptest.NewLogger(t), cfg, provider)
		require.Error(t, err)
		assert.Zero(t, provider.creates)
	})

	t.Run("duplicate key", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SetApplyTable(writeFile(t, dir, "dup.yaml", "par_0: 1\npar_0: 2\n"))
		err := runApply(context.Background(), zaptest.NewLogger(t), cfg, &modelProvider{})
		assert.ErrorIs(t, err, paramset.ErrDuplicateKey)
	})

	t.Run("host failure", func(t *testing.T) {
		cfg := newTestConfig()
		err := runApply(context.Background(), zaptest.NewLogger(t), cfg, &modelProvider{err: errors.New("boom")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize host")
	})

	t.Run("unknown block", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.ControllerCfg.Block = "Missing"
		cfg.ControllerCfg.BlockMap = writeFile(t, dir, "export.txt", blockExport)
		err := runApply(context.Background(), zaptest.NewLogger(t), cfg, &modelProvider{})
		assert.ErrorIs(t, err, blockmap.ErrNotFound)
	})
}

func TestResolveTemplate(t *testing.T) {
	dir := t.TempDir()
	export := writeFile(t, dir, "export.txt", blockExport)

	tpl, err := resolveTemplate(config.ControllerConfig{})
	require.NoError(t, err)
	assert.Equal(t, paramset.DefaultController, tpl.Controller())

	tpl, err = resolveTemplate(config.ControllerConfig{Path: "[Block Diagram].[Other]"})
	require.NoError(t, err)
	assert.Equal(t, "[Block Diagram].[Other]", tpl.Controller())

	tpl, err = resolveTemplate(config.ControllerConfig{Block: "[RobotController]", BlockMap: export})
	require.NoError(t, err)
	assert.Equal(t, "[Block Diagram].[Cell].[RobotController]", tpl.Controller())

	_, err = resolveTemplate(config.ControllerConfig{Block: "RobotController", BlockMap: filepath.Join(dir, "none.txt")})
	assert.Error(t, err)
}

func TestApplyDumpDiff_WithPersistentState(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	state := filepath.Join(dir, "state", "model.db")

	cfg := newTestConfig()
	cfg.SetSimState(state)
	require.NoError(t, runApply(ctx, logger, cfg, NewHostProvider()))

	// A fresh host restored from the same state file reports the applied values.
	snapshotPath := filepath.Join(dir, "snapshot.yaml")
	require.NoError(t, runDump(ctx, logger, cfg, snapshotPath, NewHostProvider(), &bytes.Buffer{}))

	snapshot, err := paramset.LoadTableFile(snapshotPath)
	require.NoError(t, err)
	res := compare.Tables(paramset.Default(), snapshot)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Changed)
	assert.Equal(t, []string{"KinID"}, res.Extra)

	var out bytes.Buffer
	res, err = runDiff(ctx, logger, cfg, compare.DefaultOptions(), NewHostProvider(), &out)
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
	assert.Contains(t, out.String(), "KinID")
	assert.Contains(t, out.String(), "0 missing, 0 changed, 1 extra")
}

func TestRunDiff_FreshControllerDiffersFromDefaultTable(t *testing.T) {
	var out bytes.Buffer
	res, err := runDiff(context.Background(), zaptest.NewLogger(t), newTestConfig(), compare.DefaultOptions(), &modelProvider{}, &out)
	require.NoError(t, err)

	require.NotEmpty(t, res.Changed)
	assert.Equal(t, "par_6", res.Changed[0].Name)
	assert.Equal(t, 320.0, res.Changed[0].Expected)
	assert.Equal(t, 0.0, res.Changed[0].Actual)
	assert.Contains(t, out.String(), "changed")
}

func TestRunDiff_MatchingTable(t *testing.T) {
	dir := t.TempDir()
	cfg := newTestConfig()
	provider := &modelProvider{}
	logger := zaptest.NewLogger(t)

	// Snapshot the untouched controller and diff against it.
	snapshotPath := filepath.Join(dir, "snapshot.yaml")
	require.NoError(t, runDump(context.Background(), logger, cfg, snapshotPath, provider, &bytes.Buffer{}))
	cfg.SetApplyTable(snapshotPath)

	var out bytes.Buffer
	res, err := runDiff(context.Background(), logger, cfg, compare.DefaultOptions(), provider, &out)
	require.NoError(t, err)
	assert.True(t, res.Equal())
	assert.Contains(t, out.String(), "Controller matches the parameter table")
}

func TestRunDump_RendersTable(t *testing.T) {
	var out bytes.Buffer
	err := runDump(context.Background(), zaptest.NewLogger(t), newTestConfig(), "", &modelProvider{}, &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Controller snapshot")
	assert.Contains(t, s, paramset.DefaultController)
	assert.Contains(t, s, "Axis_6.a_max")
	assert.Contains(t, s, "1575")
}

func TestCommands_EndToEnd(t *testing.T) {
	t.Run("show with config controller", func(t *testing.T) {
		dir := isolateEnv(t)
		cfgFile := writeFile(t, dir, "paramctl.yaml", "logger:\n  level: fatal\ncontroller:\n  path: \"[Block Diagram].[Bench]\"\n")
		table := writeFile(t, dir, "table.yaml", "trafo[0].param[6]: 320\n")

		out, err := executeRoot(t, "--config", cfgFile, "show", "--table", table)
		require.NoError(t, err)
		assert.Contains(t, out, "[Block Diagram].[Bench].[par_6]")
		assert.Contains(t, out, "320")
	})

	t.Run("apply and dump through the state file", func(t *testing.T) {
		dir := isolateEnv(t)
		writeFile(t, dir, ".env", "PARAMCTL_LOGGER_LEVEL=fatal\n")
		t.Cleanup(func() { os.Unsetenv("PARAMCTL_LOGGER_LEVEL") })
		table := writeFile(t, dir, "table.yaml", "par_6: 320\nAxis_2.s_init: 45\n")
		state := filepath.Join(dir, "model.db")
		snapshot := filepath.Join(dir, "out.yaml")

		_, err := executeRoot(t, "apply", "--table", table, "--state", state)
		require.NoError(t, err)
		_, err = executeRoot(t, "dump", "--state", state, "--output", snapshot)
		require.NoError(t, err)

		got, err := paramset.LoadTableFile(snapshot)
		require.NoError(t, err)
		v, ok := got.Get("par_6")
		require.True(t, ok)
		assert.Equal(t, 320.0, v)
		v, ok = got.Get("Axis_2.s_init")
		require.True(t, ok)
		assert.Equal(t, 45.0, v)
	})

	t.Run("arguments are rejected", func(t *testing.T) {
		isolateEnv(t)
		_, err := executeRoot(t, "apply", "extra")
		assert.Error(t, err)
	})
}

func TestRunApply_UsesConfigInterface(t *testing.T) {
	cfg := new(mocks.MockConfig)
	cfg.On("Controller").Return(config.ControllerConfig{Path: "[Block Diagram].[Bench]"})
	cfg.On("Apply").Return(config.ApplyConfig{MessageFlag: true})
	cfg.On("Sim").Return(config.SimConfig{Open: true})
	provider := &modelProvider{}

	require.NoError(t, runApply(context.Background(), zaptest.NewLogger(t), cfg, provider))

	assert.Equal(t, "[Block Diagram].[Bench]", provider.tpl.Controller())
	msgs := provider.model.Messages()
	require.Len(t, msgs, paramset.Default().Len())
	assert.Equal(t, len(msgs), countLevel(msgs, sim.LevelInfo), "the TX2 model is declared under the configured controller")
	assert.True(t, msgs[0].Flag)
	cfg.AssertExpectations(t)
}

func TestApplySimFlags(t *testing.T) {
	c := newDumpCmd(&modelProvider{})
	require.NoError(t, c.Flags().Parse([]string{"--state", "model.db"}))

	cfg := new(mocks.MockConfig)
	cfg.On("SetSimState", "model.db").Once()

	applySimFlags(c, cfg)

	cfg.AssertExpectations(t)
	cfg.AssertNotCalled(t, "SetSimOpen", mock.Anything)
}

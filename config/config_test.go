// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/loopcons/config"
	"github.com/katalvlaran/loopcons/consistency"
	"github.com/katalvlaran/loopcons/loopclosure"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, consistency.DefaultGamma, cfg.Gamma)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	assert.Equal(t, loopclosure.DefaultGenerateConfig(), cfg.Generate)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
gamma: 1.5
workers: 4
output: out.mtx.zst
generate:
  inliers: 20
  seed: 9
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Gamma)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "out.mtx.zst", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20, cfg.Generate.Inliers)
	assert.Equal(t, int64(9), cfg.Generate.Seed)
	assert.Equal(t, loopclosure.DefaultGenerateConfig().Outliers, cfg.Generate.Outliers)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "# nothing set\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "gama: 1\n"))
	assert.Error(t, err, "unknown key must be rejected")

	_, err = config.Load(writeFile(t, "gamma: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeFile(t, "workers: -2\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeFile(t, "output: \"\"\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBuilderOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Gamma = 2.5
	g, err := loopclosure.Generate(cfg.Generate)
	require.NoError(t, err)

	b, err := consistency.NewBuilder(g.Set, cfg.BuilderOptions(zap.NewNop())...)
	require.NoError(t, err)
	assert.Equal(t, 2.5, b.Gamma())
}
